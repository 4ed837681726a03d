package model

import "testing"

func TestAnnouncementLifecycleGates(t *testing.T) {
	tests := []struct {
		status  string
		canEdit bool
	}{
		{AnnouncementDraft, true},
		{AnnouncementScheduled, true},
		{AnnouncementSending, false},
		{AnnouncementSent, false},
		{AnnouncementCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			a := Announcement{Status: tt.status}
			if got := a.CanEdit(); got != tt.canEdit {
				t.Errorf("CanEdit: got %v, want %v", got, tt.canEdit)
			}
			if got := a.CanSend(); got != tt.canEdit {
				t.Errorf("CanSend: got %v, want %v", got, tt.canEdit)
			}
		})
	}
}
