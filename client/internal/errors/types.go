// Package errors classifies fetch failures by whether a caller could
// reasonably try the same request again. The fetcher itself never retries.
package errors

import "fmt"

// Category tells a caller how a failed request may be handled.
type Category int

const (
	// Recoverable failures may succeed if the request is sent again later.
	// Examples: 503 Service Unavailable, 429 Too Many Requests, connection refused.
	Recoverable Category = iota

	// Irrecoverable failures will fail again for the same request.
	// Examples: 400 Bad Request, 401 Unauthorized, 404 Not Found.
	Irrecoverable
)

// String returns a human-readable representation of the category.
func (c Category) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}
