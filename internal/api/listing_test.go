package api

import (
	"net/http/httptest"
	"testing"
)

func TestParsePagination_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/items", nil)
	p := ParsePagination(r)
	if p.Page != 1 || p.PerPage != 50 {
		t.Errorf("expected defaults page=1 per_page=50, got %d/%d", p.Page, p.PerPage)
	}
	if p.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset())
	}
}

func TestParsePagination_Explicit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/items?page=3&per_page=20", nil)
	p := ParsePagination(r)
	if p.Page != 3 || p.PerPage != 20 {
		t.Errorf("expected page=3 per_page=20, got %d/%d", p.Page, p.PerPage)
	}
	if p.Offset() != 40 {
		t.Errorf("expected offset 40, got %d", p.Offset())
	}
}

func TestParsePagination_ClampsPerPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/items?per_page=10000", nil)
	p := ParsePagination(r)
	if p.PerPage != 200 {
		t.Errorf("expected per_page clamped to 200, got %d", p.PerPage)
	}
}

func TestParsePagination_IgnoresInvalid(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/items?page=-1&per_page=abc", nil)
	p := ParsePagination(r)
	if p.Page != 1 || p.PerPage != 50 {
		t.Errorf("expected defaults on invalid input, got %d/%d", p.Page, p.PerPage)
	}
}

func TestTotalPages(t *testing.T) {
	p := PaginationParams{Page: 1, PerPage: 50}
	tests := []struct {
		total int64
		want  int
	}{
		{0, 0},
		{1, 1},
		{50, 1},
		{51, 2},
		{150, 3},
	}
	for _, tt := range tests {
		if got := p.TotalPages(tt.total); got != tt.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestParseOrder(t *testing.T) {
	allowed := []string{"name", "created_at"}

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"no params", "/api/items", "created_at desc"},
		{"allowed column asc", "/api/items?order_by=name", "name asc"},
		{"allowed column desc", "/api/items?order_by=name&order=desc", "name desc"},
		{"desc case-insensitive", "/api/items?order_by=name&order=DESC", "name desc"},
		{"disallowed column", "/api/items?order_by=attributes", "created_at desc"},
		{"injection attempt", "/api/items?order_by=name;drop+table", "created_at desc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			if got := ParseOrder(r, allowed, "created_at desc"); got != tt.want {
				t.Errorf("ParseOrder = %q, want %q", got, tt.want)
			}
		})
	}
}
