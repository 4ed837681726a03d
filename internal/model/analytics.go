package model

import "time"

// Analytics periods accepted by the summary endpoint.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// AnalyticsSummary is the aggregate returned by the analytics summary
// endpoint for one period.
type AnalyticsSummary struct {
	Period         string    `json:"period"`
	TotalPayments  int       `json:"totalPayments"`
	TotalAmount    float64   `json:"totalAmount"`
	CompletedCount int       `json:"completedCount"`
	PendingCount   int       `json:"pendingCount"`
	FailedCount    int       `json:"failedCount"`
	NewMembers     int       `json:"newMembers"`
	ActiveCoops    int       `json:"activeCooperatives"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// CompletionRate renders the completed share of payments, "0%" when
// there are none.
func (s AnalyticsSummary) CompletionRate() string {
	return Percent(s.CompletedCount, s.TotalPayments)
}

// StatusCount is one slice of a payment status breakdown.
type StatusCount struct {
	Status string  `json:"status"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// OrganizationPaymentStats is the per-cooperative payment aggregate.
type OrganizationPaymentStats struct {
	Summary         AnalyticsSummary `json:"summary"`
	StatusBreakdown []StatusCount    `json:"statusBreakdown"`
}
