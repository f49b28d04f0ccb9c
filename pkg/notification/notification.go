// Package notification connects a host application's notifications to Pushover.
package notification

import (
	"context"
	"net/http"

	"github.com/Veraticus/pushover-channel/pkg/pushover"
)

// ChannelName is the name targets are asked to route for.
const ChannelName = "pushover"

// Target is something that can be notified, such as a user account.
//
// RouteNotificationFor returns the destination for the named channel: a
// user or group key string, a Route (e.g. *pushover.Receiver), or nil or ""
// when the target does not use the channel.
type Target interface {
	RouteNotificationFor(channel string) any
}

// Notification is a notification that can describe itself as a Pushover message.
type Notification interface {
	ToPushover(target Target) (*pushover.Message, error)
}

// Route serializes a delivery destination.
type Route interface {
	ToParams() pushover.Params
}

// Sender submits merged parameters to the Pushover API.
type Sender interface {
	Send(ctx context.Context, params pushover.Params) (*http.Response, error)
}

// FailedEvent reports that a notification could not be delivered because the
// API could not be reached.
type FailedEvent struct {
	Target       Target
	Notification Notification
	Channel      string
	Reasons      []string
}

// FailedHandler receives delivery failures.
type FailedHandler func(FailedEvent)
