package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// User-facing copy for conflict responses on account creation. The
// backend signals which field collided through a substring of its
// message.
const (
	MsgPhoneExists = "Phone number already exists. Please use a different phone number."
	MsgEmailExists = "Email address already exists. Please use a different email address."
)

// AuthError indicates that the session token was rejected or the
// credentials were wrong. The root model reacts by returning to the
// login page.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an
// AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// StatusError is a non-2xx backend response carrying the HTTP status
// and the backend's message.
type StatusError struct {
	// Status is the HTTP status code.
	Status int

	// Message is the backend's error message, when it sent one.
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// newStatusError extracts the backend message from an error response
// body, falling back to the raw body text.
func newStatusError(status int, body []byte) *StatusError {
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		if eb.Message != "" {
			return &StatusError{Status: status, Message: eb.Message}
		}
		if eb.Error != "" {
			return &StatusError{Status: status, Message: eb.Error}
		}
	}
	return &StatusError{Status: status, Message: strings.TrimSpace(string(body))}
}

// UserMessage converts any client error into the string shown in a
// page's inline error banner. Validation never reaches this path; it
// covers network failures and backend statuses.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Status {
		case http.StatusForbidden:
			return "You do not have permission to perform this action."
		case http.StatusNotFound:
			return "The requested record was not found."
		case http.StatusConflict:
			return conflictMessage(statusErr.Message)
		default:
			if statusErr.Status >= 500 {
				return "The server encountered an error. Please try again."
			}
			if statusErr.Message != "" {
				return statusErr.Message
			}
			return fmt.Sprintf("Request failed with status %d.", statusErr.Status)
		}
	}

	return "Unable to reach the server. Check your connection and retry."
}

// conflictMessage maps a 409 body to targeted copy. Admin and user
// creation collide on phone or email; the backend names the field
// somewhere in its message.
func conflictMessage(backendMsg string) string {
	lower := strings.ToLower(backendMsg)
	switch {
	case strings.Contains(lower, "phone"):
		return MsgPhoneExists
	case strings.Contains(lower, "email"):
		return MsgEmailExists
	case backendMsg != "":
		return backendMsg
	default:
		return "A record with these details already exists."
	}
}
