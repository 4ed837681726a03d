package announcements

import (
	"testing"
	"time"

	"github.com/Copay-Africa/copay-administration-sub000/internal/api"
	"github.com/Copay-Africa/copay-administration-sub000/internal/keys"
	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return New(api.NewClient("http://localhost:0", nil), nil, keys.DefaultKeyMap(), 20, 80, 24)
}

func TestBuildInputRequiresTitleAndBody(t *testing.T) {
	m := newTestModel(t)
	m.fb.title = "Maintenance window"
	if _, err := m.buildInput(); err == nil {
		t.Fatal("expected validation error for blank body")
	}

	m.fb.title = ""
	m.fb.body = "Down for an hour"
	if _, err := m.buildInput(); err == nil {
		t.Fatal("expected validation error for blank title")
	}
}

func TestBuildInputRejectsPastSchedule(t *testing.T) {
	m := newTestModel(t)
	m.fb.title = "Maintenance window"
	m.fb.body = "Down for an hour"
	m.fb.scheduledAt = "2020-01-01 09:00"

	if _, err := m.buildInput(); err == nil {
		t.Fatal("expected validation error for a past schedule")
	}
}

func TestBuildInputFutureSchedule(t *testing.T) {
	m := newTestModel(t)
	m.fb.title = "Maintenance window"
	m.fb.body = "Down for an hour"
	future := time.Now().Add(48 * time.Hour)
	m.fb.scheduledAt = future.Format("2006-01-02 15:04")

	input, err := m.buildInput()
	if err != nil {
		t.Fatalf("buildInput failed: %v", err)
	}
	if input.ScheduledAt == nil {
		t.Fatal("ScheduledAt: got nil, want the parsed time")
	}
}

func TestStatsFailureRendersZeroAggregate(t *testing.T) {
	m := newTestModel(t)
	m.stats = model.StatsSummary{Total: 8}

	m, _ = m.Update(statsLoadedMsg{err: &api.StatusError{Status: 500}})

	if m.stats.Total != 0 {
		t.Errorf("stats.Total: got %d, want 0", m.stats.Total)
	}
	if m.stats.ByStatus == nil {
		t.Error("expected non-nil ByStatus in fallback aggregate")
	}
}

func TestMutationDoneRefetches(t *testing.T) {
	m := newTestModel(t)
	m.Load(false)
	m, _ = m.Update(listLoadedMsg{
		gen:  1,
		page: model.ResourceList[model.Announcement]{Items: []model.Announcement{{ID: "a1"}}},
	})

	m, cmd := m.Update(mutationDoneMsg{action: "send"})
	if cmd == nil {
		t.Fatal("expected refetch cmds after a mutation")
	}
	if !m.refreshing {
		t.Error("refreshing: got false, want true")
	}
}
