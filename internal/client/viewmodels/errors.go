package viewmodels

import (
	"errors"

	"github.com/onlyventilateur/ovcli/internal/client/api"
)

// ErrAuthRequired is returned by handlers that need a session while none is
// active. No network call has been made; the presentation layer is expected
// to route the user to the login screen.
var ErrAuthRequired = errors.New("authentication required")

// userMessage extracts the server-provided message from an api failure,
// falling back to the given text for failures that carry none.
func userMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
