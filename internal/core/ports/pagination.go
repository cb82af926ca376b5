package ports

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (MaxPage-1)*MaxLimit within a 32-bit int.
	MaxPage = math.MaxInt32 / MaxLimit
)

// PageRequest is a normalised 1-based page selection.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest applies defaults: page < 1 becomes 1, limit < 1 becomes
// DefaultLimit, page is capped at MaxPage and limit at MaxLimit.
func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// Offset is the zero-based row offset of the page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one page of a listing plus totals for the whole set.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewPage computes TotalPages as ceil(total/limit).
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: TotalPages(total, req.Limit),
	}
}

// TotalPages returns ceil(total/limit), or 0 when limit is not positive.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
