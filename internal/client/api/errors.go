package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable means the server could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized means the credential was missing or rejected.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

// Error is an HTTP-level failure carrying the user-facing message the
// server attached to the response, if any.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d: %s", e.Status, http.StatusText(e.Status))
}

// Is maps well-known statuses onto the package sentinels so callers can
// use errors.Is without inspecting status codes themselves.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}
