// Package client fetches JSON resources from an HTTP API rooted at a fixed base URL.
package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client fetches JSON resources relative to a fixed base URL.
// A Client is not modified after New and is safe for concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	defaults RequestOptions
	logger   *zerolog.Logger

	apiKey    string // sent as a bearer token when set
	requestID bool   // stamp X-Request-ID on outgoing requests
}

// New constructs a Client that resolves every path against baseURL.
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}

	c.wrapTransport()

	return c
}

// BaseURL returns the base URL all paths are resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) log() *zerolog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return &log.Logger
}

// Fetch requests baseURL + "/" + path with opts merged over the client
// defaults and returns the decoded JSON body of a 2xx response.
//
// opts may be nil. Any failure before a response is received, and any
// non-2xx response, is returned as a *FetchError. A 2xx response whose body
// is not valid JSON returns the encoding/json error as is.
func (c *Client) Fetch(ctx context.Context, path string, opts *RequestOptions) (any, error) {
	body, err := c.do(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchAs behaves like Client.Fetch but decodes a 2xx body into T.
func FetchAs[T any](ctx context.Context, c *Client, path string, opts *RequestOptions) (T, error) {
	var out T
	body, err := c.do(ctx, path, opts)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, err
	}
	return out, nil
}

// do performs one round-trip and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, path string, opts *RequestOptions) ([]byte, error) {
	merged := mergeOptions(c.defaults, opts)
	url := c.baseURL + "/" + path
	method := merged.method()

	start := time.Now()
	req, err := merged.newRequest(ctx, url)
	if err != nil {
		observeRequest(method, StatusTransportFailure, start)
		c.log().Debug().Err(err).Str("method", method).Str("url", url).Msg("fetch request build failure")
		return nil, newTransportError(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		observeRequest(method, StatusTransportFailure, start)
		c.log().Debug().Err(err).Str("method", method).Str("url", url).Msg("fetch transport failure")
		return nil, newTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, readErr := io.ReadAll(resp.Body)
	observeRequest(method, resp.StatusCode, start)

	c.log().Debug().
		Str("method", method).
		Str("url", url).
		Int("status_code", resp.StatusCode).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("fetch completed")

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, newUnauthorizedError(data, readErr)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, newStatusError(resp.StatusCode, data, readErr)
	}

	if readErr != nil {
		return nil, readErr
	}
	return data, nil
}
