// Package view holds the presentation-side bookkeeping derived from the
// record store: pagination windows over a filtered view and the selection
// sets bulk actions operate on.
package view

import "fmt"

// PageSizeAll is the sentinel for an unbounded page size: the whole
// filtered view on a single page.
const PageSizeAll = 0

// DefaultPageSize matches the dashboard's initial rows-per-page setting.
const DefaultPageSize = 20

// RangeError reports a page request outside the valid range. The request
// is rejected rather than clamped; current state is untouched.
type RangeError struct {
	Requested int
	Min, Max  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("page %d out of range [%d,%d]", e.Requested, e.Min, e.Max)
}

// Pager computes 1-indexed page windows over an ordered view.
type Pager struct {
	page  int
	size  int
	total int
}

// NewPager starts at page 1 with the given page size. Non-positive sizes
// other than PageSizeAll fall back to the default.
func NewPager(size int) *Pager {
	p := &Pager{page: 1}
	p.setSize(size)
	return p
}

func (p *Pager) setSize(size int) {
	if size < 0 {
		size = DefaultPageSize
	}
	p.size = size
}

// Reset records a new view length and returns to page 1. Called whenever
// the filtered view changes in size or composition.
func (p *Pager) Reset(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.page = 1
}

// SetSize changes the page size and always resets to page 1.
func (p *Pager) SetSize(size int) {
	p.setSize(size)
	p.page = 1
}

// SetPage moves to an absolute page, rejecting requests outside
// [1, TotalPages] with a RangeError and leaving state unchanged.
func (p *Pager) SetPage(n int) error {
	if n < 1 || n > p.TotalPages() {
		return &RangeError{Requested: n, Min: 1, Max: p.TotalPages()}
	}
	p.page = n
	return nil
}

// Window returns the half-open slice bounds [lo, hi) of the current page,
// clamped to the view length.
func (p *Pager) Window() (lo, hi int) {
	if p.size == PageSizeAll {
		return 0, p.total
	}
	lo = (p.page - 1) * p.size
	if lo > p.total {
		lo = p.total
	}
	hi = lo + p.size
	if hi > p.total {
		hi = p.total
	}
	return lo, hi
}

// TotalPages is ceil(total/size), never less than 1; unbounded size always
// reports a single page.
func (p *Pager) TotalPages() int {
	if p.size == PageSizeAll || p.total == 0 {
		return 1
	}
	pages := (p.total + p.size - 1) / p.size
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Page returns the current 1-indexed page.
func (p *Pager) Page() int { return p.page }

// Size returns the page size, PageSizeAll when unbounded.
func (p *Pager) Size() int { return p.size }

// Total returns the recorded view length.
func (p *Pager) Total() int { return p.total }

// HasPrev reports whether a previous page exists.
func (p *Pager) HasPrev() bool { return p.page > 1 }

// HasNext reports whether a further page exists.
func (p *Pager) HasNext() bool { return p.page < p.TotalPages() }
