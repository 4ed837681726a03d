package api

import (
	"errors"
	"fmt"
	"testing"
)

func TestUserMessageConflicts(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		want    string
	}{
		{"phone collision", "Phone number +250788000000 already registered", MsgPhoneExists},
		{"email collision", "A user with this EMAIL already exists", MsgEmailExists},
		{"phone wins over neither", "duplicate phone entry", MsgPhoneExists},
		{"other message passes through", "Cooperative code taken", "Cooperative code taken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &StatusError{Status: 409, Message: tt.backend}
			if got := UserMessage(err); got != tt.want {
				t.Errorf("UserMessage: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessageStatuses(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{403, "You do not have permission to perform this action."},
		{404, "The requested record was not found."},
		{500, "The server encountered an error. Please try again."},
		{503, "The server encountered an error. Please try again."},
	}

	for _, tt := range tests {
		err := &StatusError{Status: tt.status, Message: "backend detail"}
		if got := UserMessage(err); got != tt.want {
			t.Errorf("UserMessage(%d): got %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestUserMessageNetworkFallback(t *testing.T) {
	err := fmt.Errorf("executing request GET /api/v1/users: %w", errors.New("dial tcp: connection refused"))
	want := "Unable to reach the server. Check your connection and retry."
	if got := UserMessage(err); got != want {
		t.Errorf("UserMessage: got %q, want %q", got, want)
	}
}

func TestUserMessageAuth(t *testing.T) {
	err := fmt.Errorf("fetching users: %w", &AuthError{Message: "session expired"})
	if got := UserMessage(err); got != "session expired" {
		t.Errorf("UserMessage: got %q, want %q", got, "session expired")
	}
	if !IsAuthError(err) {
		t.Error("IsAuthError: got false, want true for wrapped AuthError")
	}
}

func TestNewStatusErrorBodyShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"bad input"}`, "bad input"},
		{"error field", `{"error":"broken"}`, "broken"},
		{"plain text", "  gateway timeout \n", "gateway timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newStatusError(400, []byte(tt.body))
			if err.Message != tt.want {
				t.Errorf("Message: got %q, want %q", err.Message, tt.want)
			}
		})
	}
}
