package accommodations

import (
	"strings"
	"time"

	"staybase/internal/domain/shared/daterange"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SearchParams describe listing filters and paging. When CheckIn/CheckOut
// are both set the repository must exclude accommodations with any blocked
// period conflicting with that window.
type SearchParams struct {
	Location string
	Guests   int
	CheckIn  time.Time
	CheckOut time.Time
	Page     int
	PageSize int
}

// Normalized returns a sanitized copy of params.
func (p SearchParams) Normalized() SearchParams {
	normalized := p
	normalized.Location = strings.TrimSpace(strings.ToLower(normalized.Location))
	if normalized.Guests < 0 {
		normalized.Guests = 0
	}
	normalized.CheckIn = normalizeDate(normalized.CheckIn)
	normalized.CheckOut = normalizeDate(normalized.CheckOut)
	if !normalized.CheckIn.IsZero() && !normalized.CheckOut.IsZero() && !normalized.CheckOut.After(normalized.CheckIn) {
		normalized.CheckIn = time.Time{}
		normalized.CheckOut = time.Time{}
	}
	if normalized.Page < 1 {
		normalized.Page = 1
	}
	if normalized.PageSize <= 0 {
		normalized.PageSize = defaultPageSize
	}
	if normalized.PageSize > maxPageSize {
		normalized.PageSize = maxPageSize
	}
	return normalized
}

// HasStay reports whether the params carry a complete stay window.
func (p SearchParams) HasStay() bool {
	return !p.CheckIn.IsZero() && !p.CheckOut.IsZero()
}

// Stay builds the requested stay window; callers must check HasStay first.
func (p SearchParams) Stay() daterange.StayRange {
	return daterange.StayRange{CheckIn: p.CheckIn, CheckOut: p.CheckOut}
}

func normalizeDate(value time.Time) time.Time {
	if value.IsZero() {
		return value
	}
	return daterange.Day(value)
}

// SearchResult wraps search hits with paging meta.
type SearchResult struct {
	Items []*Accommodation
	Total int
}
