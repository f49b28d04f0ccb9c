// Package pushover builds and submits messages to the Pushover API.
package pushover

import "net/url"

// Params is a flat set of form fields sent to the Pushover API.
type Params map[string]string

// Merge returns a new Params holding p overlaid with each of others in order.
// On key collision the later mapping wins.
func (p Params) Merge(others ...Params) Params {
	merged := make(Params, len(p))
	for k, v := range p {
		merged[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			merged[k] = v
		}
	}
	return merged
}

// Values converts the parameters to form values.
func (p Params) Values() url.Values {
	values := make(url.Values, len(p))
	for k, v := range p {
		values.Set(k, v)
	}
	return values
}
