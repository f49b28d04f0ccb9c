package pushover

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/pushover-channel/pkg/interfaces"
	"github.com/Veraticus/pushover-channel/pkg/logx"
)

// MessagesURL is the Pushover message API endpoint.
const MessagesURL = "https://api.pushover.net/1/messages.json"

// maxErrorBody caps how much of an error response is buffered.
const maxErrorBody = 64 << 10

// Client sends messages to the Pushover API on behalf of one application.
//
// It is safe for concurrent use as long as its HTTP client is.
type Client struct {
	http     interfaces.Doer
	token    string
	endpoint string
	log      logx.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. Timeouts are configured there.
func WithHTTPClient(doer interfaces.Doer) Option {
	return func(c *Client) { c.http = doer }
}

// WithEndpoint points the client at another messages endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

func WithLogger(log logx.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a client sending with the given application token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		http:     http.DefaultClient,
		token:    token,
		endpoint: MessagesURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log.IsZero() {
		c.log = logx.Nop()
	}
	return c
}

// Send posts params to the API. A token in params takes precedence over the
// client's application token.
//
// Any response with a status below 400 is returned as is and the caller must
// close its body. Error statuses, and client failures that still produced a
// response, are returned as *ResponseError; when no response was received the
// error is a *CommunicationError.
func (c *Client) Send(ctx context.Context, params Params) (*http.Response, error) {
	form := Params{"token": c.token}.Merge(params).Values()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &CommunicationError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)

	if resp == nil {
		if err == nil {
			err = ErrNoResponse
		}
		c.log.Debug("pushover request failed", logx.String("endpoint", c.endpoint), logx.Duration("elapsed", elapsed), logx.Err(err))
		return nil, &CommunicationError{Err: err}
	}
	if err != nil {
		c.log.Debug("pushover request failed after a response",
			logx.String("endpoint", c.endpoint),
			logx.Int("status", resp.StatusCode),
			logx.Duration("elapsed", elapsed),
			logx.Err(err),
		)
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
		resp.Body = http.NoBody
		respErr := newResponseError(resp, nil)
		respErr.Err = err
		return nil, respErr
	}
	if resp.Body == nil {
		resp.Body = http.NoBody
	}

	c.log.Debug("pushover responded",
		logx.String("endpoint", c.endpoint),
		logx.Int("status", resp.StatusCode),
		logx.Duration("elapsed", elapsed),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(body))
		return nil, newResponseError(resp, body)
	}

	return resp, nil
}
