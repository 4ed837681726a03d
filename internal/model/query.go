package model

import "strconv"

// FilterAll is the sentinel filter value meaning "no filter". It is a
// UI-side convenience only and is never sent to the backend.
const FilterAll = "all"

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 20

// ListQuery holds the pagination and filter state for one list page.
// Every filter setter resets Page to 1 so a new filter always starts
// from the first page of its result set.
type ListQuery struct {
	Page  int
	Limit int

	Search     string
	Status     string
	Type       string
	EntityType string

	// IsActive is a tri-state string filter: "", "true" or "false".
	IsActive string

	StartDate string
	EndDate   string

	SecurityOnly bool

	// Year, MinAmount and MaxAmount are optional numeric filters; nil
	// means absent.
	Year      *int
	MinAmount *float64
	MaxAmount *float64
}

// NewListQuery returns a query for the first page with the given page
// size.
func NewListQuery(limit int) ListQuery {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return ListQuery{Page: 1, Limit: limit}
}

// SetPage moves to the given page, clamped to 1.
func (q *ListQuery) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	q.Page = page
}

// SetSearch replaces the search term and resets to the first page.
func (q *ListQuery) SetSearch(term string) {
	q.Search = normalize(term)
	q.Page = 1
}

// SetStatus replaces the status filter and resets to the first page.
func (q *ListQuery) SetStatus(status string) {
	q.Status = normalize(status)
	q.Page = 1
}

// SetType replaces the type filter and resets to the first page.
func (q *ListQuery) SetType(t string) {
	q.Type = normalize(t)
	q.Page = 1
}

// SetEntityType replaces the entity type filter and resets to the
// first page.
func (q *ListQuery) SetEntityType(t string) {
	q.EntityType = normalize(t)
	q.Page = 1
}

// SetIsActive replaces the tri-state active filter and resets to the
// first page.
func (q *ListQuery) SetIsActive(v string) {
	q.IsActive = normalize(v)
	q.Page = 1
}

// SetSecurityOnly toggles the security-event filter and resets to the
// first page.
func (q *ListQuery) SetSecurityOnly(on bool) {
	q.SecurityOnly = on
	q.Page = 1
}

// SetDateRange replaces the date window and resets to the first page.
// Dates are passed through as entered; validation is the backend's.
func (q *ListQuery) SetDateRange(start, end string) {
	q.StartDate = start
	q.EndDate = end
	q.Page = 1
}

// SetYear parses and installs the year filter. Unparsable input
// clears the filter instead of erroring.
func (q *ListQuery) SetYear(raw string) {
	q.Page = 1
	y, err := strconv.Atoi(normalize(raw))
	if err != nil {
		q.Year = nil
		return
	}
	q.Year = &y
}

// SetAmountRange parses and installs the amount window. Each bound is
// independent; unparsable input clears that bound.
func (q *ListQuery) SetAmountRange(minRaw, maxRaw string) {
	q.Page = 1
	q.MinAmount = parseAmount(minRaw)
	q.MaxAmount = parseAmount(maxRaw)
}

func parseAmount(raw string) *float64 {
	f, err := strconv.ParseFloat(normalize(raw), 64)
	if err != nil {
		return nil
	}
	return &f
}

// normalize maps the FilterAll sentinel to the empty string so it
// never reaches the wire.
func normalize(v string) string {
	if v == FilterAll {
		return ""
	}
	return v
}
