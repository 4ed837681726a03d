package model

import "testing"

func TestNewListQueryDefaults(t *testing.T) {
	q := NewListQuery(0)
	if q.Page != 1 {
		t.Errorf("Page: got %d, want 1", q.Page)
	}
	if q.Limit != DefaultPageSize {
		t.Errorf("Limit: got %d, want %d", q.Limit, DefaultPageSize)
	}

	q = NewListQuery(50)
	if q.Limit != 50 {
		t.Errorf("Limit: got %d, want 50", q.Limit)
	}
}

func TestFilterSettersResetPage(t *testing.T) {
	tests := []struct {
		name  string
		apply func(q *ListQuery)
	}{
		{"search", func(q *ListQuery) { q.SetSearch("john") }},
		{"status", func(q *ListQuery) { q.SetStatus("unread") }},
		{"type", func(q *ListQuery) { q.SetType("PAYMENT_DUE") }},
		{"entityType", func(q *ListQuery) { q.SetEntityType("USER") }},
		{"isActive", func(q *ListQuery) { q.SetIsActive("true") }},
		{"securityOnly", func(q *ListQuery) { q.SetSecurityOnly(true) }},
		{"dateRange", func(q *ListQuery) { q.SetDateRange("2026-01-01", "2026-01-31") }},
		{"year", func(q *ListQuery) { q.SetYear("2026") }},
		{"amountRange", func(q *ListQuery) { q.SetAmountRange("100", "500") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewListQuery(20)
			q.SetPage(4)
			tt.apply(&q)
			if q.Page != 1 {
				t.Errorf("Page after %s: got %d, want 1", tt.name, q.Page)
			}
		})
	}
}

func TestSetPageClampsToOne(t *testing.T) {
	q := NewListQuery(20)
	q.SetPage(0)
	if q.Page != 1 {
		t.Errorf("Page: got %d, want 1", q.Page)
	}
	q.SetPage(-3)
	if q.Page != 1 {
		t.Errorf("Page: got %d, want 1", q.Page)
	}
}

func TestAllSentinelNormalized(t *testing.T) {
	q := NewListQuery(20)
	q.SetStatus(FilterAll)
	if q.Status != "" {
		t.Errorf("Status: got %q, want empty", q.Status)
	}
	q.SetType(FilterAll)
	if q.Type != "" {
		t.Errorf("Type: got %q, want empty", q.Type)
	}
	q.SetIsActive(FilterAll)
	if q.IsActive != "" {
		t.Errorf("IsActive: got %q, want empty", q.IsActive)
	}
}

func TestSetYearInvalidClears(t *testing.T) {
	q := NewListQuery(20)
	q.SetYear("2026")
	if q.Year == nil || *q.Year != 2026 {
		t.Fatalf("Year: got %v, want 2026", q.Year)
	}

	q.SetYear("twenty")
	if q.Year != nil {
		t.Errorf("Year after invalid input: got %v, want nil", *q.Year)
	}
}

func TestSetAmountRangePartialParse(t *testing.T) {
	q := NewListQuery(20)
	q.SetAmountRange("100.50", "not-a-number")
	if q.MinAmount == nil || *q.MinAmount != 100.50 {
		t.Errorf("MinAmount: got %v, want 100.50", q.MinAmount)
	}
	if q.MaxAmount != nil {
		t.Errorf("MaxAmount: got %v, want nil", *q.MaxAmount)
	}
}
