// Package testutil provides thread-safe test doubles for the notification packages.
package testutil

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/Veraticus/pushover-channel/pkg/notification"
	"github.com/Veraticus/pushover-channel/pkg/pushover"
)

// MockSender is a thread-safe mock implementation of notification.Sender
type MockSender struct {
	mu       sync.Mutex
	attempts []pushover.Params
	status   int
	sendErr  error
}

// NewMockSender creates a mock sender answering 200 OK
func NewMockSender() *MockSender {
	return &MockSender{status: http.StatusOK}
}

// Send implements the notification.Sender interface
func (m *MockSender) Send(ctx context.Context, params pushover.Params) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempts = append(m.attempts, params.Merge())

	if m.sendErr != nil {
		return nil, m.sendErr
	}
	return &http.Response{
		StatusCode: m.status,
		Status:     http.StatusText(m.status),
		Body:       io.NopCloser(strings.NewReader(`{"status":1}`)),
	}, nil
}

// GetAttempts returns a copy of all parameters passed to Send
func (m *MockSender) GetAttempts() []pushover.Params {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]pushover.Params, len(m.attempts))
	copy(result, m.attempts)
	return result
}

// SetError sets the error to return on Send calls
func (m *MockSender) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendErr = err
}

// MockTarget routes the pushover channel to a fixed destination
type MockTarget struct {
	Route any

	mu       sync.Mutex
	channels []string
}

// NewMockTarget creates a target routing to route
func NewMockTarget(route any) *MockTarget {
	return &MockTarget{Route: route}
}

// RouteNotificationFor implements the notification.Target interface
func (m *MockTarget) RouteNotificationFor(channel string) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels = append(m.channels, channel)
	return m.Route
}

// GetRoutedChannels returns the channel names the target was asked about
func (m *MockTarget) GetRoutedChannels() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]string, len(m.channels))
	copy(result, m.channels)
	return result
}

// MockNotification builds messages with a function
type MockNotification struct {
	Build func(target notification.Target) (*pushover.Message, error)

	mu    sync.Mutex
	calls int
}

// NewMockNotification creates a notification that always produces a message with content
func NewMockNotification(content string) *MockNotification {
	return &MockNotification{
		Build: func(notification.Target) (*pushover.Message, error) {
			return pushover.NewMessage(content), nil
		},
	}
}

// ToPushover implements the notification.Notification interface
func (m *MockNotification) ToPushover(target notification.Target) (*pushover.Message, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.Build(target)
}

// GetCallCount returns how many times ToPushover was called
func (m *MockNotification) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// FailedRecorder collects failed delivery events
type FailedRecorder struct {
	mu     sync.Mutex
	events []notification.FailedEvent
}

// NewFailedRecorder creates an empty recorder
func NewFailedRecorder() *FailedRecorder {
	return &FailedRecorder{}
}

// Handle implements notification.FailedHandler
func (r *FailedRecorder) Handle(event notification.FailedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// GetEvents returns a copy of the recorded events
func (r *FailedRecorder) GetEvents() []notification.FailedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]notification.FailedEvent, len(r.events))
	copy(result, r.events)
	return result
}
