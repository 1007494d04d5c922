package errors

// TransportStatus is the status value used when no HTTP response was received.
const TransportStatus = 0

// ForStatus maps an HTTP status code to a Category.
//
//   - no response (TransportStatus) is recoverable
//   - 4xx is irrecoverable, except 408 and 429
//   - 5xx is recoverable
func ForStatus(statusCode int) Category {
	switch {
	case statusCode == TransportStatus:
		return Recoverable
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		// 1xx/3xx that reached the error path: assume the server may answer differently next time.
		return Recoverable
	}
}

// IsIrrecoverable reports whether a failure with the given status should not be sent again.
func IsIrrecoverable(statusCode int) bool {
	return ForStatus(statusCode) == Irrecoverable
}
