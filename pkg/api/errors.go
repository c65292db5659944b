package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// FallbackMessage is shown when the backend gives no usable message.
const FallbackMessage = "Something went wrong. Please try again."

var ErrMissingToken = errors.New("api: login response carried no access token")
var ErrMalformedPayload = errors.New("api: response payload missing expected field")

// Error is a failed API call: a status code plus the backend's message, if
// it sent one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: server returned %d", e.Status)
}

// Unauthorized reports whether the failure means the token is not usable.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// newStatusError extracts the backend's "message" field from an error body.
// Bodies that are not JSON, or carry no message, fall back to the generic
// string at display time.
func newStatusError(status int, raw []byte) *Error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	e := &Error{Status: status}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			e.Message = body.Message
		} else if body.Error != "" {
			e.Message = body.Error
		}
	}
	return e
}

// UserMessage resolves any gateway error to a human-readable notification
// string, preferring the backend-supplied message.
func UserMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return FallbackMessage
}
