package model

import "time"

// Entity types an activity record can reference.
const (
	EntityUser         = "USER"
	EntityPayment      = "PAYMENT"
	EntityOrganization = "ORGANIZATION"
	EntityAnnouncement = "ANNOUNCEMENT"
)

// UserRef is a read-only snapshot of the acting user, supplied inline
// by the backend.
type UserRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// Activity is a single audit-log record of something that happened on
// the platform.
type Activity struct {
	// ID is the opaque backend identifier.
	ID string `json:"id"`

	// Action is the verb, e.g. "LOGIN", "PAYMENT_CREATED".
	Action string `json:"action"`

	// EntityType is one of the Entity* constants.
	EntityType string `json:"entityType"`

	// EntityID identifies the touched entity within its type.
	EntityID string `json:"entityId"`

	// Description is the human-readable summary.
	Description string `json:"description"`

	// SecurityEvent marks records relevant to security review
	// (failed logins, permission changes).
	SecurityEvent bool `json:"securityEvent"`

	// User is the acting user snapshot, when known.
	User *UserRef `json:"user,omitempty"`

	// IPAddress is the request origin recorded by the backend.
	IPAddress string `json:"ipAddress"`

	// CreatedAt is when the activity occurred.
	CreatedAt time.Time `json:"createdAt"`
}

// ActivityStats is the aggregate returned by the activity stats
// endpoint.
type ActivityStats struct {
	Total          int            `json:"total"`
	SecurityEvents int            `json:"securityEvents"`
	ByAction       map[string]int `json:"byAction"`
	ByHour         []HourCount    `json:"byHour"`
}

// EmptyActivityStats returns an all-zero aggregate with non-nil maps.
// It is the explicit fallback rendered when the stats fetch fails, so
// the widgets above the list keep drawing instead of crashing.
func EmptyActivityStats() ActivityStats {
	return ActivityStats{
		ByAction: map[string]int{},
		ByHour:   []HourCount{},
	}
}
