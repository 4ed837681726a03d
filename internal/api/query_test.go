package api

import (
	"testing"

	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

func TestEncodeQueryAlwaysCarriesPagination(t *testing.T) {
	q := model.NewListQuery(25)
	q.SetPage(3)

	values := encodeQuery(q)
	if got := values.Get("page"); got != "3" {
		t.Errorf("page: got %q, want %q", got, "3")
	}
	if got := values.Get("limit"); got != "25" {
		t.Errorf("limit: got %q, want %q", got, "25")
	}
}

func TestEncodeQueryClampsBadPagination(t *testing.T) {
	q := model.ListQuery{Page: 0, Limit: -5}

	values := encodeQuery(q)
	if got := values.Get("page"); got != "1" {
		t.Errorf("page: got %q, want %q", got, "1")
	}
	if got := values.Get("limit"); got != "20" {
		t.Errorf("limit: got %q, want %q", got, "20")
	}
}

func TestEncodeQueryOmitsAbsentFilters(t *testing.T) {
	q := model.NewListQuery(20)

	values := encodeQuery(q)
	for _, key := range []string{"search", "status", "type", "entityType", "isActive", "startDate", "endDate", "securityEvent", "year", "minAmount", "maxAmount"} {
		if values.Has(key) {
			t.Errorf("expected %q to be omitted, got %q", key, values.Get(key))
		}
	}
}

func TestEncodeQueryNeverSendsAllSentinel(t *testing.T) {
	// Even a query assembled without the setters must not leak the
	// sentinel onto the wire.
	q := model.ListQuery{Page: 1, Limit: 20, Status: model.FilterAll, Type: model.FilterAll}

	values := encodeQuery(q)
	if values.Has("status") {
		t.Errorf("status: got %q, want omitted", values.Get("status"))
	}
	if values.Has("type") {
		t.Errorf("type: got %q, want omitted", values.Get("type"))
	}
}

func TestEncodeQuerySetFilters(t *testing.T) {
	q := model.NewListQuery(20)
	q.SetSearch("okafor")
	q.SetStatus("unread")
	q.SetEntityType("PAYMENT")
	q.SetIsActive("false")
	q.SetDateRange("2026-01-01", "2026-02-01")
	q.SetSecurityOnly(true)
	q.SetYear("2026")
	q.SetAmountRange("100", "5000.5")

	values := encodeQuery(q)
	want := map[string]string{
		"search":        "okafor",
		"status":        "unread",
		"entityType":    "PAYMENT",
		"isActive":      "false",
		"startDate":     "2026-01-01",
		"endDate":       "2026-02-01",
		"securityEvent": "true",
		"year":          "2026",
		"minAmount":     "100",
		"maxAmount":     "5000.5",
	}
	for key, w := range want {
		if got := values.Get(key); got != w {
			t.Errorf("%s: got %q, want %q", key, got, w)
		}
	}
}
