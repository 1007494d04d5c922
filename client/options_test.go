package client

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func okResponse() *http.Response {
	return &http.Response{StatusCode: 200, ProtoMajor: 1, ProtoMinor: 1, Body: http.NoBody, Header: make(http.Header)}
}

func TestWithHTTPTimeout(t *testing.T) {
	c := &Client{http: &http.Client{}}
	require.NoError(t, WithHTTPTimeout(5*time.Second)(c))
	assert.Equal(t, 5*time.Second, c.http.Timeout)

	assert.Error(t, WithHTTPTimeout(0)(c))
	assert.Error(t, WithHTTPTimeout(-time.Second)(c))
}

func TestNew_NoTimeoutByDefault(t *testing.T) {
	c := New("http://example.com")
	assert.Zero(t, c.http.Timeout)
	assert.Equal(t, "http://example.com", c.BaseURL())
}

func TestWithHTTPClient_CopiesClient(t *testing.T) {
	rt := roundTripFunc(func(*http.Request) (*http.Response, error) { return okResponse(), nil })
	hc := &http.Client{Transport: rt}

	c := New("http://example.com", WithHTTPClient(hc), WithAPIKey("k"))
	assert.NotSame(t, hc, c.http)
	_, wrapped := c.http.Transport.(*apiKeyTransport)
	assert.True(t, wrapped)
	_, untouched := hc.Transport.(roundTripFunc)
	assert.True(t, untouched, "caller's http.Client must not be modified")

	assert.Error(t, WithHTTPClient(nil)(&Client{}))
}

func TestWithDebugLogging(t *testing.T) {
	var called bool
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return okResponse(), nil
	})
	var buf bytes.Buffer
	c := New("http://example.com",
		WithHTTPClient(&http.Client{Transport: rt}),
		WithDebugLogging(true),
		WithLogger(zerolog.New(&buf)),
	)
	_, ok := c.http.Transport.(*debugTransport)
	require.True(t, ok)

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", http.NoBody)
	_, err := c.http.Do(req)
	require.NoError(t, err)
	assert.True(t, called, "base transport not invoked")
	assert.Contains(t, buf.String(), "HTTP request")
	assert.Contains(t, buf.String(), "HTTP response")
}

func TestWithDebugLogging_Disabled(t *testing.T) {
	c := &Client{http: &http.Client{}}
	require.NoError(t, WithDebugLogging(false)(c))
	assert.Nil(t, c.http.Transport)
}

func TestNew_AutoEnableDebugViaEnv(t *testing.T) {
	t.Setenv("MYCELIAN_DEBUG", "true")
	c := New("http://example.com")
	_, ok := c.http.Transport.(*debugTransport)
	assert.True(t, ok, "expected debugTransport to be installed when MYCELIAN_DEBUG=true")
}

func TestDebugTransport_ErrorPath(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	var buf bytes.Buffer
	c := New("http://example.com",
		WithHTTPClient(&http.Client{Transport: rt}),
		WithDebugLogging(true),
		WithLogger(zerolog.New(&buf)),
	)

	_, err := c.Fetch(context.Background(), "x", nil)
	assert.True(t, IsTransportFailure(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, buf.String(), "HTTP request failed")
}

func TestWithAPIKey(t *testing.T) {
	var auth []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = append(auth, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithAPIKey("secret"))
	_, err := c.Fetch(context.Background(), "a", nil)
	require.NoError(t, err)
	_, err = c.Fetch(context.Background(), "b", &RequestOptions{Headers: map[string]string{"Authorization": "Basic xyz"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer secret", "Basic xyz"}, auth)
	assert.Error(t, WithAPIKey("")(&Client{}))
}

func TestWithRequestID(t *testing.T) {
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get(RequestIDHeader))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithRequestID(true))
	for i := 0; i < 2; i++ {
		_, err := c.Fetch(context.Background(), "a", nil)
		require.NoError(t, err)
	}
	_, err := c.Fetch(context.Background(), "a", &RequestOptions{Headers: map[string]string{RequestIDHeader: "fixed"}})
	require.NoError(t, err)

	require.Len(t, ids, 3)
	assert.Len(t, ids[0], 36)
	assert.NotEqual(t, ids[0], ids[1])
	assert.Equal(t, "fixed", ids[2])
}

func TestNew_NoRequestIDByDefault(t *testing.T) {
	var id string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = r.Header.Get(RequestIDHeader)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Fetch(context.Background(), "a", nil)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestWithDefaultOptions_CopiesHeaders(t *testing.T) {
	h := map[string]string{"A": "1"}
	c := &Client{}
	require.NoError(t, WithDefaultOptions(RequestOptions{Headers: h})(c))
	h["A"] = "changed"
	assert.Equal(t, "1", c.defaults.Headers["A"])
}
