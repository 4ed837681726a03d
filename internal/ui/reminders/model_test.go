package reminders

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

func TestBuildInputRequiresTitle(t *testing.T) {
	m := newTestModel(t)
	m.fb.title = "   "
	m.fb.date = "2026-09-01 10:00"

	if _, err := m.buildInput(); err == nil {
		t.Fatal("expected validation error for blank title")
	}
}

func TestBuildInputRejectsBadDate(t *testing.T) {
	m := newTestModel(t)
	m.fb.title = "Monthly dues"
	m.fb.date = "next tuesday"

	if _, err := m.buildInput(); err == nil {
		t.Fatal("expected validation error for unparsable date")
	}
}

func TestBuildInputAssemblesPayload(t *testing.T) {
	m := newTestModel(t)
	m.fb.title = "  Monthly dues  "
	m.fb.message = "Pay before Friday"
	m.fb.reminderType = model.ReminderPaymentDue
	m.fb.date = "2026-09-01 10:00"

	input, err := m.buildInput()
	if err != nil {
		t.Fatalf("buildInput failed: %v", err)
	}
	if input.Title != "Monthly dues" {
		t.Errorf("Title: got %q", input.Title)
	}
	if input.Type != model.ReminderPaymentDue {
		t.Errorf("Type: got %q", input.Type)
	}
	want := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	if !input.ReminderDate.Equal(want) {
		t.Errorf("ReminderDate: got %v, want %v", input.ReminderDate, want)
	}
}

func TestCreateSuccessTriggersRefresh(t *testing.T) {
	m := newTestModel(t)
	m.Load(false)
	m, _ = m.Update(listLoadedMsg{
		gen:  1,
		page: model.ResourceList[model.Reminder]{Items: []model.Reminder{{ID: "r1"}}},
	})

	m, cmd := m.Update(createdMsg{})
	if cmd == nil {
		t.Fatal("expected a refetch cmd after create")
	}
	if !m.refreshing {
		t.Error("refreshing: got false, want true")
	}
}
