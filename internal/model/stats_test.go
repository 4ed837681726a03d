package model

import "testing"

func TestPercent(t *testing.T) {
	tests := []struct {
		part, total int
		want        string
	}{
		{0, 0, "0%"},
		{5, 0, "0%"},
		{0, 10, "0%"},
		{5, 10, "50%"},
		{10, 10, "100%"},
		{1, 3, "33%"},
	}

	for _, tt := range tests {
		if got := Percent(tt.part, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d): got %q, want %q", tt.part, tt.total, got, tt.want)
		}
	}
}

func TestEmptyStatsSummaryHasMaps(t *testing.T) {
	s := EmptyStatsSummary()
	if s.ByStatus == nil || s.ByType == nil {
		t.Fatal("expected non-nil breakdown maps")
	}
	if s.Total != 0 {
		t.Errorf("Total: got %d, want 0", s.Total)
	}
}

func TestSortByHour(t *testing.T) {
	buckets := []HourCount{
		{Hour: 14, Count: 3},
		{Hour: 2, Count: 7},
		{Hour: 9, Count: 1},
	}
	SortByHour(buckets)

	for i := 1; i < len(buckets); i++ {
		if buckets[i-1].Hour > buckets[i].Hour {
			t.Fatalf("buckets not ordered: %v", buckets)
		}
	}
}
