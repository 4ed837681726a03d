package model

import "time"

// Organization is a cooperative registered on the platform.
type Organization struct {
	// ID is the opaque backend identifier, used as cooperativeId when
	// creating the organization's admin account.
	ID string `json:"id"`

	// Name is the cooperative's registered name.
	Name string `json:"name"`

	// Code is the short registration code.
	Code string `json:"code"`

	// MemberCount is the number of enrolled members.
	MemberCount int `json:"memberCount"`

	// IsActive is the cooperative's lifecycle flag.
	IsActive bool `json:"isActive"`

	// CreatedAt is when the cooperative was registered.
	CreatedAt time.Time `json:"createdAt"`
}

// OrganizationInput is the payload for registering a cooperative.
type OrganizationInput struct {
	Name  string `json:"name"`
	Code  string `json:"code,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// AdminInput is the payload for creating a cooperative's admin account.
// CooperativeID must be the id returned by the organization creation
// step of the registration wizard.
type AdminInput struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	PIN           string `json:"pin"`
	CooperativeID string `json:"cooperativeId"`
}

// TenantInput is the payload for provisioning a tenant.
type TenantInput struct {
	Name   string `json:"name"`
	Domain string `json:"domain,omitempty"`
	Plan   string `json:"plan,omitempty"`
}

// Tenant is a provisioned tenant as returned by the backend.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
}
