package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/pushover-channel/pkg/config"
	"github.com/Veraticus/pushover-channel/pkg/logx"
	"github.com/Veraticus/pushover-channel/pkg/notification"
	"github.com/Veraticus/pushover-channel/pkg/pushover"
)

// ErrDeliveryFailed is returned by Run when the Pushover API could not be reached.
var ErrDeliveryFailed = errors.New("notification could not be delivered")

// Options describes the message to send.
type Options struct {
	Message   string
	Title     string
	URL       string
	URLTitle  string
	Timestamp int64
}

// Dependencies holds all the dependencies for the application
type Dependencies struct {
	Config  *config.Config
	Logger  logx.Logger
	Client  *pushover.Client
	Channel *notification.Channel

	mu       sync.Mutex
	failures []notification.FailedEvent
}

// NewDependencies creates all dependencies with the given configuration.
// Extra client options are applied after the defaults.
func NewDependencies(cfg *config.Config, opts ...pushover.Option) (*Dependencies, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	deps := &Dependencies{
		Config: cfg,
		Logger: logx.New(cfg.Log),
	}

	clientOpts := append([]pushover.Option{
		pushover.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		pushover.WithLogger(deps.Logger),
	}, opts...)
	deps.Client = pushover.NewClient(cfg.Token, clientOpts...)
	deps.Channel = notification.NewChannel(deps.Client, deps.recordFailure, deps.Logger)

	return deps, nil
}

func (d *Dependencies) recordFailure(ev notification.FailedEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures = append(d.failures, ev)
}

// Failures returns the delivery failures reported so far.
func (d *Dependencies) Failures() []notification.FailedEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]notification.FailedEvent, len(d.failures))
	copy(out, d.failures)
	return out
}

// Application represents the main application
type Application struct {
	deps *Dependencies
}

// NewApplication creates a new application with the given dependencies
func NewApplication(deps *Dependencies) *Application {
	return &Application{
		deps: deps,
	}
}

// Run sends one notification to the configured receiver.
func (a *Application) Run(ctx context.Context, opts Options) error {
	before := len(a.deps.Failures())

	receiver := a.receiver()
	target := cliTarget{receiver: receiver}
	n := &messageNotification{cfg: a.deps.Config, opts: opts}
	if err := a.deps.Channel.Send(ctx, target, n); err != nil {
		return err
	}

	failures := a.deps.Failures()[before:]
	if len(failures) > 0 {
		var reasons []string
		for _, f := range failures {
			reasons = append(reasons, f.Reasons...)
		}
		return fmt.Errorf("%w: %s", ErrDeliveryFailed, strings.Join(reasons, "; "))
	}

	a.deps.Logger.Info("notification sent",
		logx.Strings("devices", receiver.Devices()),
	)
	return nil
}

func (a *Application) receiver() *pushover.Receiver {
	r := pushover.WithUserKey(a.deps.Config.UserKey)
	if len(a.deps.Config.Devices) > 0 {
		r = r.ToDevices(a.deps.Config.Devices)
	}
	return r
}

type cliTarget struct {
	receiver *pushover.Receiver
}

func (t cliTarget) RouteNotificationFor(channel string) any {
	if channel != notification.ChannelName {
		return nil
	}
	return t.receiver
}

type messageNotification struct {
	cfg  *config.Config
	opts Options
}

func (n *messageNotification) ToPushover(notification.Target) (*pushover.Message, error) {
	msg := pushover.NewMessage(n.opts.Message)
	if n.opts.Title != "" {
		msg = msg.Title(n.opts.Title)
	}
	if n.opts.URL != "" {
		msg = msg.URL(n.opts.URL, n.opts.URLTitle)
	}
	if n.opts.Timestamp != 0 {
		msg = msg.Timestamp(n.opts.Timestamp)
	}
	if n.cfg.Sound != "" {
		msg = msg.Sound(n.cfg.Sound)
	}

	level, set, err := n.cfg.MessagePriority()
	if err != nil {
		return nil, err
	}
	if !set {
		return msg, nil
	}
	return msg.Priority(level, seconds(n.cfg.Retry), seconds(n.cfg.Expire))
}

// seconds rounds d up to whole seconds and returns nil for non-positive durations.
func seconds(d time.Duration) *int {
	if d <= 0 {
		return nil
	}
	return pushover.Int(int((d + time.Second - 1) / time.Second))
}
