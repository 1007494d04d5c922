package client

import (
	"errors"
	"fmt"

	errclass "github.com/mycelian/mycelian-fetch/client/internal/errors"
)

// StatusTransportFailure is the FetchError.Status of a request that never
// produced an HTTP response. It is not a valid HTTP status code.
const StatusTransportFailure = errclass.TransportStatus

var (
	// ErrUnauthorized is wrapped by the FetchError returned for a 401 response.
	ErrUnauthorized = errors.New("unauthorized request")
	// ErrRequestFailed is wrapped by the FetchError returned for any other non-2xx response.
	ErrRequestFailed = errors.New("request failed")
)

// FetchError is returned by Fetch for every failure except a malformed
// success body.
type FetchError struct {
	// Message includes the status and the formatted response body when there was one.
	Message string
	// Payload is the decoded JSON error body, the raw body text when it is
	// not JSON, or nil for transport failures.
	Payload any
	// Status is the HTTP status code, or StatusTransportFailure.
	Status int

	cause error
}

func (e *FetchError) Error() string { return e.Message }

func (e *FetchError) Unwrap() error { return e.cause }

// Retryable reports whether the same request might succeed if sent again.
// Fetch never retries on its own.
func (e *FetchError) Retryable() bool {
	return !errclass.IsIrrecoverable(e.Status)
}

// IsUnauthorized reports whether err came from a 401 response.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

// IsTransportFailure reports whether err is a FetchError for a request that
// never received a response.
func IsTransportFailure(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Status == StatusTransportFailure
}

func newTransportError(err error) *FetchError {
	return &FetchError{
		Message: err.Error(),
		Status:  StatusTransportFailure,
		cause:   err,
	}
}

func newUnauthorizedError(body []byte, readErr error) *FetchError {
	return &FetchError{
		Message: "Unauthorized request",
		Payload: parsePayload(body),
		Status:  401,
		cause:   withReadErr(ErrUnauthorized, readErr),
	}
}

// newStatusError builds the error for a non-2xx, non-401 response. readErr,
// if set, is wrapped into the cause; Payload then holds whatever was read.
func newStatusError(status int, body []byte, readErr error) *FetchError {
	payload := parsePayload(body)
	return &FetchError{
		Message: fmt.Sprintf("Request failed with status %d.\nResponse:\n%s", status, formatPayload(payload)),
		Payload: payload,
		Status:  status,
		cause:   withReadErr(ErrRequestFailed, readErr),
	}
}

func withReadErr(sentinel, readErr error) error {
	if readErr == nil {
		return sentinel
	}
	return fmt.Errorf("%w: reading body: %w", sentinel, readErr)
}
