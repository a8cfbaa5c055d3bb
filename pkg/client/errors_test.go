package client

import (
	"errors"
	"fmt"
	"testing"
)

func TestRetryable(t *testing.T) {
	tests := []struct {
		name     string
		kind     ErrorKind
		expected bool
	}{
		{
			name:     "client error should not retry",
			kind:     KindClient,
			expected: false,
		},
		{
			name:     "server error should retry",
			kind:     KindServer,
			expected: true,
		},
		{
			name:     "network error should retry",
			kind:     KindNetwork,
			expected: true,
		},
		{
			name:     "invalid response should not retry",
			kind:     KindInvalidResponse,
			expected: false,
		},
		{
			name:     "unexpected status should not retry",
			kind:     KindUnexpectedStatus,
			expected: false,
		},
		{
			name:     "unknown should not retry",
			kind:     KindUnknown,
			expected: false,
		},
		{
			name:     "empty kind should not retry",
			kind:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := retryable(tt.kind)
			if result != tt.expected {
				t.Errorf("retryable(%q) = %v, want %v", tt.kind, result, tt.expected)
			}
		})
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected ErrorKind
	}{
		{200, ""},
		{204, ""},
		{301, KindUnexpectedStatus},
		{404, KindClient},
		{429, KindClient},
		{500, KindServer},
		{503, KindServer},
		{100, KindUnexpectedStatus},
		{600, KindUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			result := classifyStatus(tt.status)
			if result != tt.expected {
				t.Errorf("classifyStatus(%d) = %q, want %q", tt.status, result, tt.expected)
			}
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		apiError *APIError
		expected string
	}{
		{
			name: "error with status and wrapped error",
			apiError: &APIError{
				Kind:       KindServer,
				StatusCode: 500,
				Reason:     "Internal Server Error",
				Err:        errors.New("boom"),
			},
			expected: "pokeapi server error (status 500): Internal Server Error: boom",
		},
		{
			name: "error with status only",
			apiError: &APIError{
				Kind:       KindClient,
				StatusCode: 404,
				Reason:     "Not Found",
			},
			expected: "pokeapi client error (status 404): Not Found",
		},
		{
			name: "error without status",
			apiError: &APIError{
				Kind:   KindNetwork,
				Reason: "transport failure",
				Err:    errors.New("connection refused"),
			},
			expected: "pokeapi network error: transport failure: connection refused",
		},
		{
			name: "bare error",
			apiError: &APIError{
				Kind:   KindUnknown,
				Reason: "something odd",
			},
			expected: "pokeapi unknown error: something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.apiError.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	apiErr := &APIError{Kind: KindNetwork, Err: inner}

	if !errors.Is(apiErr, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestKindOf(t *testing.T) {
	apiErr := &APIError{Kind: KindServer, StatusCode: 502}
	wrapped := fmt.Errorf("outer: %w", apiErr)

	if got := KindOf(wrapped); got != KindServer {
		t.Errorf("KindOf(wrapped) = %q, want %q", got, KindServer)
	}

	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Errorf("KindOf(plain) = %q, want %q", got, KindUnknown)
	}
}
