package model

import (
	"strings"
	"time"
)

// Platform roles.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleMember     = "MEMBER"
)

// User is a platform account as mirrored from the backend.
type User struct {
	// ID is the opaque backend identifier.
	ID string `json:"id"`

	// FirstName and LastName make up the display name.
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// Phone is the login identifier on the platform.
	Phone string `json:"phone"`

	// Email is optional contact info.
	Email string `json:"email,omitempty"`

	// Role is one of the Role* constants.
	Role string `json:"role"`

	// IsActive is the account's lifecycle flag; deactivated accounts
	// cannot log in.
	IsActive bool `json:"isActive"`

	// CooperativeID scopes non-super-admin users to one cooperative.
	CooperativeID string `json:"cooperativeId,omitempty"`

	// CreatedAt is when the account was created.
	CreatedAt time.Time `json:"createdAt"`
}

// FullName joins the first and last names for display.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserStats is the aggregate returned by the user stats endpoint.
type UserStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// UserInput is the payload for creating a user. The backend assigns
// the id.
type UserInput struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role"`
	PIN           string `json:"pin"`
	CooperativeID string `json:"cooperativeId,omitempty"`
}

// Session is the authenticated session returned by login.
type Session struct {
	// Token is the bearer token presented on every subsequent request.
	Token string `json:"token"`

	// User is the authenticated administrator.
	User User `json:"user"`

	// ExpiresAt is when the token stops being accepted.
	ExpiresAt time.Time `json:"expiresAt"`
}
