package models

import "math"

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items   []T
	Page    int
	PerPage int
	HasNext bool
	HasPrev bool
}

// NextPage returns the next page number, or 0 when there is none.
func (p Page[T]) NextPage() int {
	if !p.HasNext {
		return 0
	}
	return p.Page + 1
}

// PrevPage returns the previous page number, or 0 when there is none.
func (p Page[T]) PrevPage() int {
	if !p.HasPrev {
		return 0
	}
	return p.Page - 1
}

// Pagination is a normalized page request.
type Pagination struct {
	Page    int
	PerPage int
}

// MaxPerPage bounds client supplied page sizes.
const MaxPerPage = 100

// NewPagination clamps page to at least 1, falls back to defaultPerPage when
// perPage is not positive and caps perPage at MaxPerPage.
func NewPagination(page, perPage, defaultPerPage int) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Pagination{Page: page, PerPage: perPage}
}

// Offset is the number of rows preceding the page. It saturates at
// math.MaxInt instead of overflowing, which still selects no rows.
func (p Pagination) Offset() int {
	if p.PerPage > 0 && p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PerPage
}

// NewPage builds a page from rows fetched with Limit PerPage+1; the extra row
// only signals that a next page exists.
func NewPage[T any](rows []T, p Pagination) Page[T] {
	hasNext := len(rows) > p.PerPage
	if hasNext {
		rows = rows[:p.PerPage]
	}
	if rows == nil {
		rows = []T{}
	}
	return Page[T]{
		Items:   rows,
		Page:    p.Page,
		PerPage: p.PerPage,
		HasNext: hasNext,
		HasPrev: p.Page > 1,
	}
}
