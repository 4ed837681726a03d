package model

// PageMeta is the pagination block some list endpoints return
// alongside their payload.
type PageMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ResourceList is one decoded page of any list endpoint.
type ResourceList[T any] struct {
	Items      []T
	TotalCount int
	Meta       PageMeta
}

// TotalPages derives the page count from the total and the page size.
func (l ResourceList[T]) TotalPages(limit int) int {
	if limit <= 0 || l.TotalCount <= 0 {
		return 1
	}
	pages := l.TotalCount / limit
	if l.TotalCount%limit != 0 {
		pages++
	}
	return pages
}
