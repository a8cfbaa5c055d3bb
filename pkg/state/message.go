package state

import (
	"errors"
	"fmt"

	"github.com/avdejs/pokefetch/pkg/client"
)

// MessageFor reduces a classified fetch error to a display string.
// It is total: every error kind maps to a non-empty message, and
// errors that did not come from the client get a generic fallback.
func MessageFor(err error) string {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return "Something went wrong. Please try again."
	}

	switch apiErr.Kind {
	case client.KindClient:
		return fmt.Sprintf("Request failed (%d %s).", apiErr.StatusCode, reasonOrDefault(apiErr))
	case client.KindServer:
		return fmt.Sprintf("Server error (%d) after %d attempts. Please try again later.",
			apiErr.StatusCode, apiErr.Attempts)
	case client.KindNetwork:
		return fmt.Sprintf("Network error after %d attempts. Check your connection.", apiErr.Attempts)
	case client.KindInvalidResponse:
		return "Received an unreadable response from the server."
	case client.KindUnexpectedStatus:
		return fmt.Sprintf("Unexpected response (%d).", apiErr.StatusCode)
	default:
		return "Something went wrong. Please try again."
	}
}

// reasonOrDefault strips an empty reason phrase down to a readable default.
func reasonOrDefault(apiErr *client.APIError) string {
	if apiErr.Reason == "" {
		return "error"
	}
	return apiErr.Reason
}
