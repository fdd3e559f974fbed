package errors

import (
	"encoding/json"
	"fmt"
)

// GenericMessage is shown when the error envelope is malformed or absent.
const GenericMessage = "Something went wrong. Please try again."

// NetworkMessage is shown when no response was received at all.
const NetworkMessage = "Can't reach the server. Check your connection and try again."

// envelope mirrors the backend error shape; kept private to this package
// so callers only see APIError.
type envelope struct {
	Success          bool              `json:"success"`
	Error            string            `json:"error"`
	Details          string            `json:"details"`
	ErrorCode        string            `json:"error_code"`
	ValidationErrors map[string]string `json:"validation_errors"`
	RetryAfter       int               `json:"retry_after"`
}

// FromResponse builds an APIError for a non-2xx response, extracting the
// human-readable message from the error envelope when possible.
func FromResponse(operation string, statusCode int, body []byte) *APIError {
	e := &APIError{
		Category:   categoryFor(statusCode),
		StatusCode: statusCode,
		Message:    GenericMessage,
		Underlying: fmt.Errorf("%s: HTTP %d", operation, statusCode),
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != "" {
		e.Message = env.Error
		e.Code = env.ErrorCode
		e.RetryAfter = env.RetryAfter
		e.Validation = env.ValidationErrors
	}
	return e
}

// FromNetwork builds an APIError for a transport-level failure where no
// response was received. Always recoverable.
func FromNetwork(operation string, err error) *APIError {
	return &APIError{
		Category:   Recoverable,
		Message:    NetworkMessage,
		Underlying: fmt.Errorf("%s: %w", operation, err),
	}
}

func categoryFor(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	default:
		return Recoverable
	}
}
