package ui

import (
	"fmt"

	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

// PageSummary renders the shared pagination footer line for a list
// page: the current page and how many rows are loaded.
func PageSummary(q model.ListQuery, loaded int) string {
	return fmt.Sprintf("page %d  %d rows  ←/→ page", q.Page, loaded)
}
