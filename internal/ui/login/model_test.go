package login

import (
	"testing"

	"github.com/Copay-Africa/copay-administration-sub000/internal/api"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return New(api.NewClient("http://localhost:0", nil), nil, 80, 24)
}

func TestCredentialsValidation(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		pin     string
		wantErr bool
	}{
		{"valid", "+250788000001", "1234", false},
		{"blank phone", "   ", "1234", true},
		{"short pin", "+250788000001", "12", true},
		{"long pin", "+250788000001", "123456", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m.fb.phone = tt.phone
			m.fb.pin = tt.pin
			_, _, err := m.credentials()
			if (err != nil) != tt.wantErr {
				t.Errorf("credentials error: got %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFailedLoginReopensForm(t *testing.T) {
	m := newTestModel(t)
	m.waiting = true
	m.fb.pin = "1234"

	m, cmd := m.Update(sessionMsg{err: &api.AuthError{Message: "invalid credentials"}})

	if m.waiting {
		t.Error("waiting: got true, want false")
	}
	if m.errMsg != "invalid credentials" {
		t.Errorf("errMsg: got %q", m.errMsg)
	}
	if m.fb.pin != "" {
		t.Errorf("pin: got %q, want cleared after a failed attempt", m.fb.pin)
	}
	if m.form == nil || cmd == nil {
		t.Error("expected the form to reopen")
	}
}
