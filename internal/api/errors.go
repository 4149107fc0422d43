package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a non-2xx answer from the platform API. The backend reports
// validation failures either as a single message string or as an array
// of them; both decode into Messages.
type Error struct {
	Status   int
	Messages []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, strings.Join(e.Messages, "; "))
}

// Message returns the first server message, or a generic fallback when
// the body carried none.
func (e *Error) Message() string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	return "Something went wrong, please try again"
}

// IsAuthError reports whether err is an upstream 401/403, which means
// the session token is missing, expired or insufficient.
func IsAuthError(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	return false
}

// ErrorMessage extracts a user-facing message from any error coming out
// of the client, falling back to the given string.
func ErrorMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	if fallback != "" {
		return fallback
	}
	return "Something went wrong, please try again"
}

type errorBody struct {
	Message json.RawMessage `json:"message"`
}

func decodeError(status int, raw []byte) *Error {
	e := &Error{Status: status}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Message) == 0 {
		return e
	}
	var single string
	if err := json.Unmarshal(body.Message, &single); err == nil {
		if single != "" {
			e.Messages = []string{single}
		}
		return e
	}
	var many []string
	if err := json.Unmarshal(body.Message, &many); err == nil {
		e.Messages = many
	}
	return e
}
