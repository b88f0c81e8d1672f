package utils

import (
	"net/http"
	"strconv"
)

// Pagination holds sanitized page/limit query parameters.
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePagination reads page/limit from the query string. Page floors at 1,
// limit is clamped to [1, 100] with the given default.
func ParsePagination(r *http.Request, defaultLimit int) Pagination {
	page := 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}

	limit := defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}
	if limit < 1 {
		limit = 1
	}

	return Pagination{Page: page, Limit: limit}
}
