package model

import "time"

// Notification type enums as defined by the backend.
const (
	NotificationPaymentReceived = "PAYMENT_RECEIVED"
	NotificationPaymentDue      = "PAYMENT_DUE"
	NotificationSystemAlert     = "SYSTEM_ALERT"
	NotificationAnnouncement    = "ANNOUNCEMENT"
)

// PaymentRef is a read-only snapshot of the payment a notification
// refers to, supplied inline by the backend. The client never resolves
// or validates the reference itself.
type PaymentRef struct {
	ID        string  `json:"id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	Reference string  `json:"reference"`
}

// Notification is an alert surfaced to platform administrators.
type Notification struct {
	// ID is the opaque backend identifier.
	ID string `json:"id"`

	// Type is one of the Notification* enum values.
	Type string `json:"type"`

	// Title is the short headline.
	Title string `json:"title"`

	// Message is the full notification text.
	Message string `json:"message"`

	// IsRead reports whether an administrator has opened it.
	IsRead bool `json:"isRead"`

	// ReadAt is when it was read; nil while unread. Stays unset after
	// a local mark-as-read patch unless the backend returned one.
	ReadAt *time.Time `json:"readAt,omitempty"`

	// Payment is the related payment snapshot, when any.
	Payment *PaymentRef `json:"payment,omitempty"`

	// CreatedAt is when the backend generated the notification.
	CreatedAt time.Time `json:"createdAt"`
}
