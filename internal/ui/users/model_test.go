package users

import (
	"testing"

	"github.com/Copay-Africa/copay-administration-sub000/internal/api"
	"github.com/Copay-Africa/copay-administration-sub000/internal/keys"
	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return New(api.NewClient("http://localhost:0", nil), nil, keys.DefaultKeyMap(), 20, 80, 24)
}

func loadedUsers(m Model, gen int, items []model.User) Model {
	updated, _ := m.Update(listLoadedMsg{
		gen:  gen,
		page: model.ResourceList[model.User]{Items: items, TotalCount: len(items)},
	})
	return updated
}

func TestStatusChangePatchesOnlyToggledRow(t *testing.T) {
	m := newTestModel(t)
	m.Load(false)
	m = loadedUsers(m, 1, []model.User{
		{ID: "u1", IsActive: true},
		{ID: "u2", IsActive: true},
	})

	m, cmd := m.Update(statusChangedMsg{
		id:      "u1",
		updated: &model.User{ID: "u1", IsActive: false},
	})

	if m.items[0].IsActive {
		t.Error("u1 IsActive: got true, want false")
	}
	if !m.items[1].IsActive {
		t.Error("u2 IsActive: got false, want untouched")
	}
	if cmd == nil {
		t.Error("expected a stats refetch cmd after a status change")
	}
}

func TestStatusChangeFailureKeepsRows(t *testing.T) {
	m := newTestModel(t)
	m.Load(false)
	m = loadedUsers(m, 1, []model.User{{ID: "u1", IsActive: true}})

	m, _ = m.Update(statusChangedMsg{id: "u1", err: &api.StatusError{Status: 403}})

	if !m.items[0].IsActive {
		t.Error("IsActive: got false, want unchanged after failed mutation")
	}
	if m.errMsg != "You do not have permission to perform this action." {
		t.Errorf("errMsg: got %q", m.errMsg)
	}
}

func TestBuildInputValidation(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(fb *formBindings)
		wantErr bool
	}{
		{"valid", func(fb *formBindings) {
			fb.firstName = "Ada"
			fb.lastName = "Okafor"
			fb.phone = "+250788000001"
			fb.role = model.RoleMember
			fb.pin = "1234"
		}, false},
		{"missing name", func(fb *formBindings) {
			fb.phone = "+250788000001"
			fb.pin = "1234"
		}, true},
		{"missing phone", func(fb *formBindings) {
			fb.firstName = "Ada"
			fb.lastName = "Okafor"
			fb.pin = "1234"
		}, true},
		{"short pin", func(fb *formBindings) {
			fb.firstName = "Ada"
			fb.lastName = "Okafor"
			fb.phone = "+250788000001"
			fb.pin = "12"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			tt.prepare(m.fb)
			_, err := m.buildInput()
			if (err != nil) != tt.wantErr {
				t.Errorf("buildInput error: got %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMutationDoneRefreshesListAndStats(t *testing.T) {
	m := newTestModel(t)
	m.Load(false)
	m = loadedUsers(m, 1, []model.User{{ID: "u1"}})

	m, cmd := m.Update(mutationDoneMsg{action: "create"})
	if cmd == nil {
		t.Fatal("expected refetch cmds after a successful mutation")
	}
	if !m.refreshing {
		t.Error("refreshing: got false, want true")
	}
}
