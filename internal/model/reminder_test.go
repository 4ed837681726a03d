package model

import (
	"testing"
	"time"
)

func TestReminderUrgency(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"an hour ago", now.Add(-time.Hour), UrgencyOverdue},
		{"yesterday", now.Add(-24 * time.Hour), UrgencyOverdue},
		{"in an hour", now.Add(time.Hour), UrgencyDueToday},
		{"just under a day away", now.Add(24*time.Hour - time.Second), UrgencyDueToday},
		{"exactly a day away", now.Add(24 * time.Hour), UrgencyUpcoming},
		{"next week", now.Add(7 * 24 * time.Hour), UrgencyUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reminder{ReminderDate: tt.date}
			if got := r.Urgency(now); got != tt.want {
				t.Errorf("Urgency: got %q, want %q", got, tt.want)
			}
		})
	}
}
