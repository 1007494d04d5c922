package client

import (
	"bytes"
	"context"
	"io"
	"maps"
	"net/http"
	"slices"
)

// RequestOptions configures a single Fetch call. A zero field means the
// caller did not supply it and the client default (if any) is used.
type RequestOptions struct {
	// Method defaults to GET when neither the caller nor the client sets it.
	Method string
	// Headers are merged key by key over the client default headers.
	Headers map[string]string
	// Body is sent verbatim. Nil means no body.
	Body []byte
}

// mergeOptions overlays user on defaults. Method and Body replace the
// default entirely; Headers are merged one level deep with user winning.
// Header names are canonicalised so "content-type" and "Content-Type" collide.
func mergeOptions(defaults RequestOptions, user *RequestOptions) RequestOptions {
	merged := RequestOptions{
		Method:  defaults.Method,
		Body:    defaults.Body,
		Headers: make(map[string]string, len(defaults.Headers)),
	}
	mergeHeaders(merged.Headers, defaults.Headers)
	if user == nil {
		return merged
	}

	if user.Method != "" {
		merged.Method = user.Method
	}
	if user.Body != nil {
		merged.Body = user.Body
	}
	mergeHeaders(merged.Headers, user.Headers)
	return merged
}

// mergeHeaders copies src into dst under canonical names. Keys are visited
// in sorted order, so when src spells one header several ways the
// byte-wise greatest spelling ("x-a" over "X-A") wins every time.
func mergeHeaders(dst, src map[string]string) {
	for _, k := range slices.Sorted(maps.Keys(src)) {
		dst[http.CanonicalHeaderKey(k)] = src[k]
	}
}

func (o RequestOptions) method() string {
	if o.Method == "" {
		return http.MethodGet
	}
	return o.Method
}

func (o RequestOptions) newRequest(ctx context.Context, url string) (*http.Request, error) {
	var body io.Reader
	if o.Body != nil {
		body = bytes.NewReader(o.Body)
	}
	req, err := http.NewRequestWithContext(ctx, o.method(), url, body)
	if err != nil {
		return nil, err
	}
	for k, v := range o.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// clone returns a copy that does not share the Headers map.
func (o RequestOptions) clone() RequestOptions {
	out := o
	if o.Headers != nil {
		out.Headers = make(map[string]string, len(o.Headers))
		for k, v := range o.Headers {
			out.Headers[k] = v
		}
	}
	return out
}
