package client

import (
	"errors"

	apierr "github.com/gcinnervoice-hash/Inner-voice-sub000/client/internal/errors"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/client/internal/types"
)

// ErrSessionExpired is returned when the access token expired and the
// refresh token was missing or rejected. The local session has been
// cleared by the time callers see this.
var ErrSessionExpired = errors.New("session expired, please sign in again")

// ErrNotFound is the shared sentinel for 404 responses.
var ErrNotFound = types.ErrNotFound

// APIError carries the uniform error shape for failed backend calls.
type APIError = apierr.APIError

// UserMessage extracts the human-readable message for err: the backend
// envelope's error string when present, a generic connectivity or failure
// message otherwise.
func UserMessage(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Message
	}
	if errors.Is(err, ErrSessionExpired) {
		return ErrSessionExpired.Error()
	}
	return apierr.GenericMessage
}

// IsRetryable reports whether err is worth retrying (network failures,
// 5xx, 408/429). The SDK itself never retries conversation turns; this
// drives the journal's retry affordance and best-effort paths.
func IsRetryable(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Category == apierr.Recoverable
	}
	return false
}

// RetryAfterSeconds returns the retry-after hint from a 429 envelope, or
// zero when none applies.
func RetryAfterSeconds(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.RetryAfter
	}
	return 0
}
