// Package transport builds the HTTP client shared by the session manager and the
// authenticated request wrapper. The shared cookie jar is what carries the
// backend's refresh credential between calls; application code never reads it.
package transport

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// RequestIDHeader is set on every outbound request that does not already carry one.
const RequestIDHeader = "X-Request-ID"

// NewHTTPClient returns a client with a fresh in-memory cookie jar.
func NewHTTPClient(timeout time.Duration) (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "[NewHTTPClient] cookie jar")
	}
	return &http.Client{
		Timeout:   timeout,
		Jar:       jar,
		Transport: &RequestIDTransport{},
	}, nil
}

// RequestIDTransport stamps a uuid request id on outbound requests.
type RequestIDTransport struct {
	// Base is the underlying transport; http.DefaultTransport when nil.
	Base http.RoundTripper
}

func (t *RequestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if req.Header.Get(RequestIDHeader) != "" {
		return base.RoundTrip(req)
	}
	// RoundTrippers must not modify the caller's request.
	clone := req.Clone(req.Context())
	clone.Header.Set(RequestIDHeader, uuid.NewString())
	return base.RoundTrip(clone)
}
