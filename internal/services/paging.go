package services

import "strings"

const (
	defaultPageSize = 30
	maxPageSize     = 100
)

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// likePattern builds a case-insensitive substring pattern for use with
// LOWER(col) LIKE ?.
func likePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
