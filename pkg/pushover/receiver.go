package pushover

import "strings"

// Receiver identifies who gets a message: a user or group key, optionally
// narrowed to specific devices, optionally sent with another application token.
type Receiver struct {
	key     string
	token   string
	devices []string
}

// WithUserKey creates a receiver for a user key.
func WithUserKey(userKey string) *Receiver {
	return &Receiver{key: userKey}
}

// WithGroupKey creates a receiver for a delivery group. Group keys behave
// exactly like user keys on the wire.
func WithGroupKey(groupKey string) *Receiver {
	return WithUserKey(groupKey)
}

// ToDevice appends a device name.
func (r *Receiver) ToDevice(device string) *Receiver {
	r.devices = append(r.devices, device)
	return r
}

// ToDevices places the given device names ahead of any recorded so far.
func (r *Receiver) ToDevices(devices []string) *Receiver {
	r.devices = append(append([]string(nil), devices...), r.devices...)
	return r
}

// WithApplicationToken sends to this receiver with token instead of the
// client's default application token.
func (r *Receiver) WithApplicationToken(token string) *Receiver {
	r.token = token
	return r
}

// Devices returns a copy of the device names.
func (r *Receiver) Devices() []string {
	return append([]string(nil), r.devices...)
}

// ToParams serializes the receiver. The device field is always present,
// empty when no devices were named; token is only present when overridden.
func (r *Receiver) ToParams() Params {
	params := Params{
		"user":   r.key,
		"device": strings.Join(r.devices, ","),
	}
	if r.token != "" {
		params["token"] = r.token
	}
	return params
}
