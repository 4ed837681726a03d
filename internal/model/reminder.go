package model

import "time"

// Reminder statuses.
const (
	ReminderActive    = "ACTIVE"
	ReminderPaused    = "PAUSED"
	ReminderCompleted = "COMPLETED"
)

// Reminder types.
const (
	ReminderPaymentDue = "PAYMENT_DUE"
	ReminderMeeting    = "MEETING"
	ReminderCustom     = "CUSTOM"
)

// Urgency labels derived from a reminder's date relative to now.
const (
	UrgencyOverdue  = "Overdue"
	UrgencyDueToday = "Due Today"
	UrgencyUpcoming = "Upcoming"
)

// Reminder is a scheduled prompt the backend delivers to cooperative
// members (payment due dates, meetings).
type Reminder struct {
	// ID is the opaque backend identifier.
	ID string `json:"id"`

	// Title is the reminder headline.
	Title string `json:"title"`

	// Message is the delivered text.
	Message string `json:"message"`

	// Type is one of the Reminder* type constants.
	Type string `json:"type"`

	// Status is ACTIVE, PAUSED or COMPLETED.
	Status string `json:"status"`

	// ReminderDate is when the reminder fires.
	ReminderDate time.Time `json:"reminderDate"`

	// CooperativeID scopes the reminder to one cooperative.
	CooperativeID string `json:"cooperativeId"`

	// CreatedAt is when the reminder was created.
	CreatedAt time.Time `json:"createdAt"`
}

// Urgency classifies the reminder against now: past dates are Overdue,
// dates within the next 24 hours are Due Today, anything later is
// Upcoming.
func (r Reminder) Urgency(now time.Time) string {
	switch {
	case r.ReminderDate.Before(now):
		return UrgencyOverdue
	case r.ReminderDate.Before(now.Add(24 * time.Hour)):
		return UrgencyDueToday
	default:
		return UrgencyUpcoming
	}
}

// ReminderInput is the payload for creating a reminder.
type ReminderInput struct {
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	Type          string    `json:"type"`
	ReminderDate  time.Time `json:"reminderDate"`
	CooperativeID string    `json:"cooperativeId,omitempty"`
}
