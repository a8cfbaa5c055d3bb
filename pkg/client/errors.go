package client

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrRetryExhausted is returned when all retry attempts are exhausted.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrContextCancelled is returned when the context is cancelled during retry.
	ErrContextCancelled = errors.New("context cancelled")
)

// ErrorKind classifies a fetch failure.
type ErrorKind string

const (
	// KindClient represents 4xx client errors.
	KindClient ErrorKind = "client"

	// KindServer represents 5xx server errors.
	KindServer ErrorKind = "server"

	// KindNetwork represents transport-level errors (timeout, DNS, refused).
	KindNetwork ErrorKind = "network"

	// KindInvalidResponse represents a 2xx response whose body could not be parsed.
	KindInvalidResponse ErrorKind = "invalid_response"

	// KindUnexpectedStatus represents a status outside the 2xx/4xx/5xx classes.
	KindUnexpectedStatus ErrorKind = "unexpected_status"

	// KindUnknown is the catch-all for unexpected processing failures.
	KindUnknown ErrorKind = "unknown"
)

// APIError is a classified PokéAPI fetch failure.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Reason     string
	Attempts   int
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode > 0:
		return fmt.Sprintf("pokeapi %s error (status %d): %s: %v",
			e.Kind, e.StatusCode, e.Reason, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("pokeapi %s error: %s: %v", e.Kind, e.Reason, e.Err)
	case e.StatusCode > 0:
		return fmt.Sprintf("pokeapi %s error (status %d): %s",
			e.Kind, e.StatusCode, e.Reason)
	default:
		return fmt.Sprintf("pokeapi %s error: %s", e.Kind, e.Reason)
	}
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or KindUnknown for errors
// that did not originate from this client.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// retryable reports whether an error kind is transient and worth retrying.
func retryable(kind ErrorKind) bool {
	switch kind {
	case KindServer:
		// 5xx is expected to resolve itself (server overload)
		return true
	case KindNetwork:
		// Network blips are transient
		return true
	default:
		// 4xx, malformed bodies, and odd statuses will not improve on retry
		return false
	}
}

// classifyStatus maps an HTTP status code to an error kind.
// 2xx is not an error and maps to the empty kind.
func classifyStatus(status int) ErrorKind {
	switch {
	case status >= 200 && status < 300:
		return ""
	case status >= 400 && status < 500:
		return KindClient
	case status >= 500 && status < 600:
		return KindServer
	default:
		return KindUnexpectedStatus
	}
}
