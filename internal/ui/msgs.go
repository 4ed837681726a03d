package ui

// SessionExpiredMsg tells the root model the bearer token was
// rejected. The root model drops the stored token and returns to the
// sign-in screen.
type SessionExpiredMsg struct{}
