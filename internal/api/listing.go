package api

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultPage    = 1
	defaultPerPage = 50
	maxPerPage     = 200
)

// PaginationParams holds parsed pagination query parameters.
type PaginationParams struct {
	Page    int
	PerPage int
}

// ParsePagination extracts pagination parameters from the request.
// Defaults: page=1, per_page=50. Maximum per_page is 200.
func ParsePagination(r *http.Request) PaginationParams {
	p := PaginationParams{
		Page:    defaultPage,
		PerPage: defaultPerPage,
	}

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}

	if v := r.URL.Query().Get("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.PerPage = n
			if p.PerPage > maxPerPage {
				p.PerPage = maxPerPage
			}
		}
	}

	return p
}

// Offset returns the database offset for the current page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// TotalPages calculates the total number of pages for a given total count.
func (p PaginationParams) TotalPages(total int64) int {
	if p.PerPage <= 0 {
		return 0
	}
	pages := int(total) / p.PerPage
	if int(total)%p.PerPage > 0 {
		pages++
	}
	return pages
}

// ParseOrder extracts an ORDER BY clause from the order_by and order
// query parameters, restricted to the given allowed columns. Returns
// the fallback clause when the parameters are missing or not allowed.
func ParseOrder(r *http.Request, allowed []string, fallback string) string {
	column := strings.TrimSpace(r.URL.Query().Get("order_by"))
	if column == "" {
		return fallback
	}

	ok := false
	for _, a := range allowed {
		if column == a {
			ok = true
			break
		}
	}
	if !ok {
		return fallback
	}

	direction := "asc"
	if strings.EqualFold(r.URL.Query().Get("order"), "desc") {
		direction = "desc"
	}
	return column + " " + direction
}
