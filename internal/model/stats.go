package model

import (
	"fmt"
	"sort"
)

// StatsSummary is the generic count aggregate shared by resource
// stats endpoints: a total plus per-status and per-type breakdowns.
type StatsSummary struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
	ByType   map[string]int `json:"byType"`
}

// EmptyStatsSummary returns an all-zero aggregate with non-nil maps.
// It is the explicit fallback rendered when a stats fetch fails.
func EmptyStatsSummary() StatsSummary {
	return StatsSummary{
		ByStatus: map[string]int{},
		ByType:   map[string]int{},
	}
}

// Percent renders part as a whole percentage of total. A zero total
// renders as "0%" rather than dividing.
func Percent(part, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", part*100/total)
}

// HourCount is one hour-of-day bucket of an activity histogram.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// SortByHour orders histogram buckets by hour in place. The backend
// does not guarantee bucket order.
func SortByHour(buckets []HourCount) {
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Hour < buckets[j].Hour
	})
}
