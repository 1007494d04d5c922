package client

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader is set by WithRequestID.
const RequestIDHeader = "X-Request-ID"

// wrapTransport installs the API-key and request-ID transports on top of
// whatever the options configured.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if c.requestID {
		base = &requestIDTransport{base: base}
	}
	if c.apiKey != "" {
		base = &apiKeyTransport{base: base, apiKey: c.apiKey}
	}
	c.http.Transport = base
}

// apiKeyTransport adds a bearer Authorization header. A header supplied by
// the caller wins.
type apiKeyTransport struct {
	base   http.RoundTripper
	apiKey string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Authorization") != "" {
		return t.base.RoundTrip(req)
	}
	// RoundTrippers must not modify the caller's request.
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+t.apiKey)
	return t.base.RoundTrip(cloned)
}

type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) != "" {
		return t.base.RoundTrip(req)
	}
	cloned := req.Clone(req.Context())
	cloned.Header.Set(RequestIDHeader, uuid.NewString())
	return t.base.RoundTrip(cloned)
}
