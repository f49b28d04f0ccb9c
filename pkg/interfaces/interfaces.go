// Package interfaces defines the collaborator interfaces shared between packages.
package interfaces

import "net/http"

// Doer performs HTTP requests. *http.Client satisfies it; timeouts and
// transport-level settings belong to the implementation.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to the Doer interface.
type DoerFunc func(req *http.Request) (*http.Response, error)

// Do calls f(req).
func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}
