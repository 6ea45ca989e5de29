package listing

import (
	"net/url"
	"strconv"
)

// PageParam is the query parameter that carries the page number in a
// screen's location.
const PageParam = "page"

// Cursor tracks the current 1-based page and the totals reported by the last
// successful fetch. The zero value is on page 1 with unknown totals.
type Cursor struct {
	number        int
	totalPages    int
	totalElements int
	known         bool
}

// Number returns the current page.
func (c *Cursor) Number() int {
	if c.number < 1 {
		return 1
	}
	return c.number
}

// TotalPages returns the last reported page count (0 when unknown).
func (c *Cursor) TotalPages() int { return c.totalPages }

// TotalElements returns the last reported element count.
func (c *Cursor) TotalElements() int { return c.totalElements }

// Known reports whether totals have been set by a fetch.
func (c *Cursor) Known() bool { return c.known }

// SetTotals records the page count and element count of a fetched result.
func (c *Cursor) SetTotals(totalPages, totalElements int) {
	c.totalPages = max(totalPages, 0)
	c.totalElements = max(totalElements, 0)
	c.known = true
}

// GoTo moves to page n. It is a no-op for the current page and rejects n < 1
// or n beyond the known page count.
func (c *Cursor) GoTo(n int) bool {
	if n < 1 || n == c.Number() {
		return false
	}
	if c.known && n > c.totalPages {
		return false
	}
	c.number = n
	return true
}

// Next advances one page unless already on the last known page.
func (c *Cursor) Next() bool {
	if !c.known || c.Number() >= c.totalPages {
		return false
	}
	c.number = c.Number() + 1
	return true
}

// Prev goes back one page unless already on page 1.
func (c *Cursor) Prev() bool {
	if c.Number() <= 1 {
		return false
	}
	c.number = c.Number() - 1
	return true
}

// ResetToFirstPage moves to page 1 and reports whether the page changed.
func (c *Cursor) ResetToFirstPage() bool {
	changed := c.Number() != 1
	c.number = 1
	return changed
}

// ReadLocation takes the page number from loc's page parameter. Missing,
// malformed or non-positive values read as page 1. Bounds are not checked
// because totals may not be known yet.
func (c *Cursor) ReadLocation(loc *url.URL) bool {
	n := 1
	if loc != nil {
		if v, err := strconv.Atoi(loc.Query().Get(PageParam)); err == nil && v > 0 {
			n = v
		}
	}
	changed := n != c.Number()
	c.number = n
	return changed
}

// WriteLocation stores the current page in loc's page parameter, keeping any
// other parameters.
func (c *Cursor) WriteLocation(loc *url.URL) {
	if loc == nil {
		return
	}
	q := loc.Query()
	q.Set(PageParam, strconv.Itoa(c.Number()))
	loc.RawQuery = q.Encode()
}

// Window returns the pager labels for the current position.
func (c *Cursor) Window() []PageLabel {
	return Window(c.Number(), c.totalPages)
}
