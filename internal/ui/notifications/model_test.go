package notifications

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

func loaded(m Model, gen int, items []model.Notification) Model {
	updated, _ := m.Update(listLoadedMsg{
		gen:  gen,
		page: model.ResourceList[model.Notification]{Items: items, TotalCount: len(items)},
	})
	return updated
}

func TestLoadSetsLoadingAndGeneration(t *testing.T) {
	m := newTestModel(t)

	cmd := m.Load(false)
	if cmd == nil {
		t.Fatal("Load returned nil cmd")
	}
	if !m.loading {
		t.Error("loading: got false, want true")
	}
	if m.gen != 1 {
		t.Errorf("gen: got %d, want 1", m.gen)
	}

	cmd = m.Load(true)
	if cmd == nil {
		t.Fatal("Load returned nil cmd")
	}
	if !m.refreshing {
		t.Error("refreshing: got false, want true")
	}
	if m.gen != 2 {
		t.Errorf("gen: got %d, want 2", m.gen)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	m := newTestModel(t)
	m.Load(false)
	m.Load(false) // supersedes the first fetch

	// The first fetch's response arrives late.
	m = loaded(m, 1, []model.Notification{{ID: "stale"}})
	if len(m.items) != 0 {
		t.Fatalf("items after stale response: got %d, want 0", len(m.items))
	}
	if !m.loading {
		t.Error("loading: got false, want true while current fetch is in flight")
	}

	m = loaded(m, 2, []model.Notification{{ID: "fresh"}})
	if len(m.items) != 1 || m.items[0].ID != "fresh" {
		t.Fatalf("items: got %+v, want the fresh row", m.items)
	}
	if m.loading {
		t.Error("loading: got true, want false after current response")
	}
}

func TestMarkedReadPatchesOnlyIsRead(t *testing.T) {
	m := newTestModel(t)
	m.Load(false)
	m = loaded(m, 1, []model.Notification{
		{ID: "n1", IsRead: false},
		{ID: "n2", IsRead: false},
	})

	// Backend returned no body, so updated is nil.
	m, _ = m.Update(markedReadMsg{id: "n1"})

	if !m.items[0].IsRead {
		t.Error("n1 IsRead: got false, want true")
	}
	if m.items[0].ReadAt != nil {
		t.Errorf("n1 ReadAt: got %v, want nil without a backend record", m.items[0].ReadAt)
	}
	if m.items[1].IsRead {
		t.Error("n2 IsRead: got true, want untouched")
	}
}

func TestMarkedReadAdoptsBackendReadAt(t *testing.T) {
	m := newTestModel(t)
	m.Load(false)
	m = loaded(m, 1, []model.Notification{{ID: "n1"}})

	readAt := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	m, _ = m.Update(markedReadMsg{
		id:      "n1",
		updated: &model.Notification{ID: "n1", IsRead: true, ReadAt: &readAt},
	})

	if m.items[0].ReadAt == nil || !m.items[0].ReadAt.Equal(readAt) {
		t.Errorf("ReadAt: got %v, want %v", m.items[0].ReadAt, readAt)
	}
}

func TestMarkedReadFailureKeepsRows(t *testing.T) {
	m := newTestModel(t)
	m.Load(false)
	m = loaded(m, 1, []model.Notification{{ID: "n1"}})

	m, _ = m.Update(markedReadMsg{id: "n1", err: &api.StatusError{Status: 500}})

	if m.items[0].IsRead {
		t.Error("IsRead: got true, want unchanged after failed mutation")
	}
	if m.errMsg == "" {
		t.Error("errMsg: got empty, want a banner message")
	}
}

func TestMarkAllDoneTriggersRefresh(t *testing.T) {
	m := newTestModel(t)
	m.Load(false)
	m = loaded(m, 1, []model.Notification{{ID: "n1"}})

	m, cmd := m.Update(markAllDoneMsg{})
	if cmd == nil {
		t.Fatal("expected a refetch cmd after mark-all completed")
	}
	if !m.refreshing {
		t.Error("refreshing: got false, want true (rows stay visible)")
	}
}

func TestFetchErrorClearsRows(t *testing.T) {
	m := newTestModel(t)
	m.Load(false)
	m = loaded(m, 1, []model.Notification{{ID: "n1"}})

	m.Load(false)
	m, _ = m.Update(listLoadedMsg{gen: 2, err: &api.StatusError{Status: 500}})

	if len(m.items) != 0 {
		t.Errorf("items after fetch error: got %d, want 0", len(m.items))
	}
	if m.errMsg != "The server encountered an error. Please try again." {
		t.Errorf("errMsg: got %q", m.errMsg)
	}
}

func TestUnreadCount(t *testing.T) {
	m := newTestModel(t)
	m.Load(false)
	m = loaded(m, 1, []model.Notification{
		{ID: "n1", IsRead: true},
		{ID: "n2"},
		{ID: "n3"},
	})

	if got := m.UnreadCount(); got != 2 {
		t.Errorf("UnreadCount: got %d, want 2", got)
	}
}

func TestOpeningUnreadDetailMarksItRead(t *testing.T) {
	m := newTestModel(t)
	m = loaded(m, 0, []model.Notification{{ID: "n1", Title: "Payment received", IsRead: false}})

	m, cmd := m.Update(detailLoadedMsg{notification: &model.Notification{ID: "n1", IsRead: false}})
	if m.detail == nil || m.detail.ID != "n1" {
		t.Fatal("detail not set after detailLoadedMsg")
	}
	if cmd == nil {
		t.Fatal("expected a mark-read cmd for an unread detail")
	}

	m, _ = m.Update(markedReadMsg{id: "n1"})
	if !m.detail.IsRead {
		t.Error("detail IsRead: got false, want true")
	}
	if !m.items[0].IsRead {
		t.Error("row IsRead: got false, want true")
	}
}

func TestOpeningReadDetailIssuesNoMutation(t *testing.T) {
	m := newTestModel(t)

	m, cmd := m.Update(detailLoadedMsg{notification: &model.Notification{ID: "n2", IsRead: true}})
	if m.detail == nil {
		t.Fatal("detail not set")
	}
	if cmd != nil {
		t.Error("expected no cmd for an already-read detail")
	}
}
