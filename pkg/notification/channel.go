package notification

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/pushover-channel/pkg/logx"
	"github.com/Veraticus/pushover-channel/pkg/pushover"
)

// Channel delivers notifications to Pushover.
//
// When the API cannot be reached, Send reports a FailedEvent and returns nil so
// the host can carry on with its other channels. Every other failure is
// returned to the caller.
type Channel struct {
	sender   Sender
	onFailed FailedHandler
	log      logx.Logger
}

// NewChannel creates a channel sending through sender. onFailed may be nil.
func NewChannel(sender Sender, onFailed FailedHandler, log logx.Logger) *Channel {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Channel{
		sender:   sender,
		onFailed: onFailed,
		log:      log.With(logx.String("channel", ChannelName)),
	}
}

// Send delivers notification to target.
func (c *Channel) Send(ctx context.Context, target Target, notification Notification) error {
	route, err := resolveRoute(target.RouteNotificationFor(ChannelName))
	if err != nil {
		return err
	}
	if route == nil {
		return nil
	}

	message, err := notification.ToPushover(target)
	if err != nil {
		return fmt.Errorf("failed to build pushover message: %w", err)
	}
	if message == nil {
		return errors.New("notification produced no pushover message")
	}

	resp, err := c.sender.Send(ctx, message.ToParams().Merge(route.ToParams()))
	if err != nil {
		var commErr *pushover.CommunicationError
		if errors.As(err, &commErr) {
			c.fireFailed(target, notification, commErr)
			return nil
		}
		return err
	}
	if resp == nil {
		c.fireFailed(target, notification, &pushover.CommunicationError{Err: pushover.ErrNoResponse})
		return nil
	}

	if resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
	return nil
}

func (c *Channel) fireFailed(target Target, notification Notification, err error) {
	c.log.Warn("notification delivery failed", logx.Err(err))

	if c.onFailed == nil {
		return
	}
	c.onFailed(FailedEvent{
		Target:       target,
		Notification: notification,
		Channel:      ChannelName,
		Reasons:      []string{err.Error()},
	})
}

// resolveRoute returns nil when the target opted out of the channel.
func resolveRoute(dest any) (Route, error) {
	switch d := dest.(type) {
	case nil:
		return nil, nil
	case string:
		if d == "" {
			return nil, nil
		}
		return pushover.WithUserKey(d), nil
	case *pushover.Receiver:
		if d == nil {
			return nil, nil
		}
		return d, nil
	case Route:
		return d, nil
	default:
		return nil, fmt.Errorf("unsupported pushover route type %T", dest)
	}
}
