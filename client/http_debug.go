package client

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog"
)

// debugTransport dumps each request and response at debug level.
//
// Enable with WithDebugLogging(true), or set MYCELIAN_DEBUG=true or
// DEBUG=true in the environment:
//
//	export MYCELIAN_DEBUG=true
//	fetchctl get users/5   # every round-trip is logged
//
// It sits beneath the API-key transport, so bearer tokens are never dumped.
// Bodies are, which is why this must stay off in production.
type debugTransport struct {
	base   http.RoundTripper
	logger func() *zerolog.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	l := dt.logger()
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}

	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		l.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		l.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		l.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested reports whether MYCELIAN_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("MYCELIAN_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
