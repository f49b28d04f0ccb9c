package pushover

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrEmergencyPriorityRequiresRetryAndExpire is returned when an emergency
// priority is set without both a retry interval and an expiry.
var ErrEmergencyPriorityRequiresRetryAndExpire = errors.New("emergency priority requires retry and expire")

// ErrNoResponse is the cause of a CommunicationError when a transport returned
// neither a response nor an error.
var ErrNoResponse = errors.New("no response received")

// ResponseError means the API was reached and answered with an error status,
// usually because of bad credentials or malformed parameters. It is also used
// when a response arrived but the HTTP client still failed, as when redirects
// are exhausted; Err then holds that failure.
type ResponseError struct {
	// Response is the raw response. Its body has been buffered and can be read again.
	Response *http.Response
	// Body holds the response body as received.
	Body []byte

	// Decoded from the API's JSON error envelope when present.
	Status  int
	Request string
	Errors  []string

	Err error
}

type errorEnvelope struct {
	Status  int      `json:"status"`
	Request string   `json:"request"`
	Errors  []string `json:"errors"`
}

func (e *ResponseError) Error() string {
	msg := "pushover responded with an error"
	if e.Response != nil {
		msg += ": " + e.Response.Status
	}
	if len(e.Errors) > 0 {
		msg += ": " + strings.Join(e.Errors, "; ")
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResponseError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status code of the response.
func (e *ResponseError) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

func newResponseError(resp *http.Response, body []byte) *ResponseError {
	e := &ResponseError{Response: resp, Body: body}
	// Not every error comes from the API itself (proxies, load balancers),
	// so an undecodable body is kept raw.
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		e.Status = env.Status
		e.Request = env.Request
		e.Errors = env.Errors
	}
	return e
}

// CommunicationError means no response was received from the API at all.
type CommunicationError struct {
	Err error
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("the communication with pushover failed: %v", e.Err)
}

func (e *CommunicationError) Unwrap() error { return e.Err }
