package api

import (
	"net/url"
	"strconv"

	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

// encodeQuery translates a ListQuery into request query parameters.
// Absent filters are omitted entirely; the FilterAll sentinel is
// normalized away here as well, so it can never leak onto the wire
// regardless of how the query was assembled.
func encodeQuery(q model.ListQuery) url.Values {
	values := url.Values{}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = model.DefaultPageSize
	}
	values.Set("page", strconv.Itoa(page))
	values.Set("limit", strconv.Itoa(limit))

	setIfPresent(values, "search", q.Search)
	setIfPresent(values, "status", q.Status)
	setIfPresent(values, "type", q.Type)
	setIfPresent(values, "entityType", q.EntityType)
	setIfPresent(values, "isActive", q.IsActive)
	setIfPresent(values, "startDate", q.StartDate)
	setIfPresent(values, "endDate", q.EndDate)

	if q.SecurityOnly {
		values.Set("securityEvent", "true")
	}
	if q.Year != nil {
		values.Set("year", strconv.Itoa(*q.Year))
	}
	if q.MinAmount != nil {
		values.Set("minAmount", strconv.FormatFloat(*q.MinAmount, 'f', -1, 64))
	}
	if q.MaxAmount != nil {
		values.Set("maxAmount", strconv.FormatFloat(*q.MaxAmount, 'f', -1, 64))
	}

	return values
}

func setIfPresent(values url.Values, key, v string) {
	if v == "" || v == model.FilterAll {
		return
	}
	values.Set(key, v)
}
