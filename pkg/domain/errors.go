package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInFlight is returned when a trigger is refused because the same action is still running.
var ErrInFlight = errors.New("action already in flight")

// ErrDeclined is returned when the user refuses a confirmation. No call was made.
var ErrDeclined = errors.New("action declined")

// ErrBoardNotFound is returned when no board snapshot exists for a key.
var ErrBoardNotFound = errors.New("status board not found")

// ValidationError is raised before any network call when user input is incomplete.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TransportError means no HTTP response was received.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError means a response was received with a non-2xx status.
type ServerError struct {
	Endpoint string
	Status   int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s responded %s", e.Endpoint, StatusLine(e.Status))
}

// StatusLine formats a status code the way the status area shows it, e.g. "500: Internal Server Error".
func StatusLine(code int) string {
	if text := http.StatusText(code); text != "" {
		return fmt.Sprintf("%d: %s", code, text)
	}
	return fmt.Sprintf("%d", code)
}
