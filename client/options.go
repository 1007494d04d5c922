package client

// This file defines functional options that configure the Client during
// construction. All available knobs live here.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// Options run in order and before the authorization and request-ID
// transports are installed, so those always sit above whatever transport
// the options leave in place.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// By default no timeout is imposed beyond the transport's own; prefer
// per-call context deadlines where possible. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the http.Client used to send requests. The client
// is copied so installing transports never mutates the caller's value.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// dumped at debug level when enabled is true. Do not enable in production:
// dumps include bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport, logger: c.log}
		}
		return nil
	}
}

// WithDefaultOptions sets the options every Fetch call is merged over.
func WithDefaultOptions(defaults RequestOptions) Option {
	return func(c *Client) error {
		c.defaults = defaults.clone()
		return nil
	}
}

// WithAPIKey sends key as a bearer token unless the request already
// carries an Authorization header. No login or refresh flow is attempted.
func WithAPIKey(key string) Option {
	return func(c *Client) error {
		if key == "" {
			return fmt.Errorf("apiKey cannot be empty")
		}
		c.apiKey = key
		return nil
	}
}

// WithRequestID stamps a random X-Request-ID on requests that do not carry one.
func WithRequestID(enabled bool) Option {
	return func(c *Client) error {
		c.requestID = enabled
		return nil
	}
}

// WithLogger routes the client's debug output to l instead of the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = &l
		return nil
	}
}
