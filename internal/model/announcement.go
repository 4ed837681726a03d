package model

import "time"

// Announcement lifecycle statuses. The normal progression is
// DRAFT, SCHEDULED, SENDING, SENT; CANCELLED is terminal from any
// pre-SENT state. Transitions happen server-side only.
const (
	AnnouncementDraft     = "DRAFT"
	AnnouncementScheduled = "SCHEDULED"
	AnnouncementSending   = "SENDING"
	AnnouncementSent      = "SENT"
	AnnouncementCancelled = "CANCELLED"
)

// Announcement is a platform-wide message composed by an administrator
// and delivered to cooperative members by the backend.
type Announcement struct {
	// ID is the opaque backend identifier.
	ID string `json:"id"`

	// Title is the announcement headline.
	Title string `json:"title"`

	// Body is the full message text.
	Body string `json:"body"`

	// Status is one of the Announcement* lifecycle constants.
	Status string `json:"status"`

	// Audience selects the recipient group, e.g. "ALL", "ADMINS".
	Audience string `json:"audience"`

	// ScheduledAt is the planned send time for scheduled announcements.
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`

	// SentAt is when delivery completed; nil before SENT.
	SentAt *time.Time `json:"sentAt,omitempty"`

	// RecipientCount is how many members received it.
	RecipientCount int `json:"recipientCount"`

	// CreatedAt is when the announcement was composed.
	CreatedAt time.Time `json:"createdAt"`
}

// CanEdit reports whether the announcement may still be modified.
// Only drafts and scheduled announcements are editable.
func (a Announcement) CanEdit() bool {
	return a.Status == AnnouncementDraft || a.Status == AnnouncementScheduled
}

// CanSend reports whether the announcement may be sent now.
func (a Announcement) CanSend() bool {
	return a.Status == AnnouncementDraft || a.Status == AnnouncementScheduled
}

// AnnouncementDraftInput is the payload for creating or updating an
// announcement. The backend assigns the id and the lifecycle status.
type AnnouncementDraftInput struct {
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Audience    string     `json:"audience"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}
