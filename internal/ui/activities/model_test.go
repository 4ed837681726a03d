package activities

import (
	"errors"
	"testing"

	"github.com/Copay-Africa/copay-administration-sub000/internal/api"
	"github.com/Copay-Africa/copay-administration-sub000/internal/keys"
	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return New(api.NewClient("http://localhost:0", nil), nil, keys.DefaultKeyMap(), t.TempDir(), 20, 80, 24)
}

func TestStatsFailureRendersZeroAggregate(t *testing.T) {
	m := newTestModel(t)
	m.stats = model.ActivityStats{Total: 12, SecurityEvents: 4}

	m, _ = m.Update(statsLoadedMsg{err: errors.New("stats endpoint down")})

	if m.stats.Total != 0 || m.stats.SecurityEvents != 0 {
		t.Errorf("stats: got %+v, want all-zero fallback", m.stats)
	}
	if m.stats.ByAction == nil || m.stats.ByHour == nil {
		t.Error("expected non-nil breakdowns in the fallback aggregate")
	}
	if m.errMsg != "" {
		t.Errorf("errMsg: got %q, want no second banner for a stats outage", m.errMsg)
	}
}

func TestStatsSuccessReplacesAggregate(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(statsLoadedMsg{stats: model.ActivityStats{Total: 9, SecurityEvents: 2}})
	if m.stats.Total != 9 || m.stats.SecurityEvents != 2 {
		t.Errorf("stats: got %+v", m.stats)
	}
}

func TestListErrorClearsRows(t *testing.T) {
	m := newTestModel(t)
	m.Load(false)
	m, _ = m.Update(listLoadedMsg{
		gen:  1,
		page: model.ResourceList[model.Activity]{Items: []model.Activity{{ID: "a1"}}},
	})
	if len(m.items) != 1 {
		t.Fatalf("items: got %d, want 1", len(m.items))
	}

	m.Load(true)
	m, _ = m.Update(listLoadedMsg{gen: 2, err: &api.StatusError{Status: 502}})
	if len(m.items) != 0 {
		t.Errorf("items after error: got %d, want 0", len(m.items))
	}
	if m.errMsg == "" {
		t.Error("errMsg: got empty, want a banner message")
	}
}

func TestSplitDateRange(t *testing.T) {
	tests := []struct {
		raw        string
		start, end string
	}{
		{"2026-01-01..2026-01-31", "2026-01-01", "2026-01-31"},
		{"2026-01-01..", "2026-01-01", ""},
		{"..2026-01-31", "", "2026-01-31"},
		{"2026-01-01", "2026-01-01", ""},
		{"", "", ""},
		{" 2026-01-01 .. 2026-01-31 ", "2026-01-01", "2026-01-31"},
	}

	for _, tt := range tests {
		start, end := splitDateRange(tt.raw)
		if start != tt.start || end != tt.end {
			t.Errorf("splitDateRange(%q): got (%q, %q), want (%q, %q)",
				tt.raw, start, end, tt.start, tt.end)
		}
	}
}
