package pushover

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Priority is the delivery priority of a message.
type Priority int

const (
	LowestPriority    Priority = -2
	LowPriority       Priority = -1
	NormalPriority    Priority = 0
	HighPriority      Priority = 1
	EmergencyPriority Priority = 2
)

var priorityNames = map[Priority]string{
	LowestPriority:    "lowest",
	LowPriority:       "low",
	NormalPriority:    "normal",
	HighPriority:      "high",
	EmergencyPriority: "emergency",
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return strconv.Itoa(int(p))
}

// Valid reports whether p is one of the levels the API accepts.
func (p Priority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

// ParsePriority accepts a level name ("high") or its number ("1").
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range priorityNames {
		if s == name {
			return p, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || !Priority(n).Valid() {
		return 0, fmt.Errorf("unknown priority %q", s)
	}
	return Priority(n), nil
}

// Int returns a pointer to v, for the optional retry and expire arguments.
func Int(v int) *int {
	return &v
}

// Message is the content and delivery options of one notification.
//
// Unset optional fields are left out of the request entirely.
type Message struct {
	content   string
	title     *string
	timestamp *int64
	priority  *Priority
	retry     *int
	expire    *int
	url       *string
	urlTitle  *string
	sound     *string
}

// NewMessage creates a message with the given text.
func NewMessage(content string) *Message {
	return &Message{content: content}
}

// Content replaces the body text.
func (m *Message) Content(content string) *Message {
	m.content = content
	return m
}

func (m *Message) Title(title string) *Message {
	m.title = &title
	return m
}

// Time sets the message timestamp from a calendar time.
func (m *Message) Time(t time.Time) *Message {
	return m.Timestamp(t.Unix())
}

// Timestamp sets the message timestamp in seconds since the epoch.
func (m *Message) Timestamp(sec int64) *Message {
	m.timestamp = &sec
	return m
}

// URL sets a supplementary link. An empty title leaves the link untitled.
func (m *Message) URL(address, title string) *Message {
	m.url = &address
	m.urlTitle = nil
	if title != "" {
		m.urlTitle = &title
	}
	return m
}

func (m *Message) Sound(sound string) *Message {
	m.sound = &sound
	return m
}

// Priority sets the priority along with the emergency retry interval and
// expiry, both in seconds. Emergency messages must carry both; otherwise
// ErrEmergencyPriorityRequiresRetryAndExpire is returned and m is unchanged.
func (m *Message) Priority(level Priority, retry, expire *int) (*Message, error) {
	if level == EmergencyPriority && (retry == nil || expire == nil) {
		return m, ErrEmergencyPriorityRequiresRetryAndExpire
	}

	m.priority = &level
	m.retry = copyInt(retry)
	m.expire = copyInt(expire)
	return m, nil
}

func (m *Message) LowestPriority() *Message { return m.fixedPriority(LowestPriority) }
func (m *Message) LowPriority() *Message    { return m.fixedPriority(LowPriority) }
func (m *Message) NormalPriority() *Message { return m.fixedPriority(NormalPriority) }
func (m *Message) HighPriority() *Message   { return m.fixedPriority(HighPriority) }

// EmergencyPriority makes the message repeat every retry seconds until it is
// acknowledged or expire seconds have passed.
func (m *Message) EmergencyPriority(retry, expire int) *Message {
	m, _ = m.Priority(EmergencyPriority, &retry, &expire)
	return m
}

func (m *Message) fixedPriority(level Priority) *Message {
	m, _ = m.Priority(level, nil, nil)
	return m
}

// ToParams serializes the message using the API field names.
func (m *Message) ToParams() Params {
	params := Params{"message": m.content}
	setString(params, "title", m.title)
	setString(params, "url", m.url)
	setString(params, "url_title", m.urlTitle)
	setString(params, "sound", m.sound)
	if m.timestamp != nil {
		params["timestamp"] = strconv.FormatInt(*m.timestamp, 10)
	}
	if m.priority != nil {
		params["priority"] = strconv.Itoa(int(*m.priority))
	}
	setInt(params, "retry", m.retry)
	setInt(params, "expire", m.expire)
	return params
}

func setString(params Params, key string, v *string) {
	if v != nil {
		params[key] = *v
	}
}

func setInt(params Params, key string, v *int) {
	if v != nil {
		params[key] = strconv.Itoa(*v)
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
