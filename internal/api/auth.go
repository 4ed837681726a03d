package api

import (
	"context"

	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

// loginRequest is the credential payload for the login endpoint.
type loginRequest struct {
	Phone string `json:"phone"`
	PIN   string `json:"pin"`
}

// Login exchanges phone and PIN for a session. On success the session
// token is installed on the client for subsequent requests.
func (c *Client) Login(ctx context.Context, phone, pin string) (*model.Session, error) {
	var session model.Session
	err := c.post(ctx, "/api/v1/auth/login", loginRequest{Phone: phone, PIN: pin}, &session)
	if err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

// Logout invalidates the session server-side and clears the local
// token. A failed logout call still clears the token; the session is
// abandoned either way.
func (c *Client) Logout(ctx context.Context) error {
	err := c.post(ctx, "/api/v1/auth/logout", nil, nil)
	c.SetToken("")
	return err
}
