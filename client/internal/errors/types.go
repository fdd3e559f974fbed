// Package errors provides error classification for the client SDK.
// Classification drives retry policy; the extracted message is what the
// UI shows the user.
package errors

import "fmt"

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors may be retried with exponential backoff.
	// Examples: 5xx, network timeouts, connection failures.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors should fail immediately without retry.
	// Examples: 400, 401, 403, 404.
	Irrecoverable
)

func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// APIError is a failed backend call, carrying the error-envelope fields
// the UI and retry policy need.
type APIError struct {
	Category   ErrorCategory
	StatusCode int               // 0 for network-level failures
	Message    string            // human-readable, from the envelope or generic
	Code       string            // backend error_code, if any
	RetryAfter int               // seconds, from 429 envelopes
	Validation map[string]string // field -> message, if any
	Underlying error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %s", e.Category, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Category, e.Message)
}

func (e *APIError) Unwrap() error { return e.Underlying }

// IsIrrecoverable reports whether err must not be retried.
func IsIrrecoverable(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Category == Irrecoverable
	}
	return false
}
