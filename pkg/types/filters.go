package types

import "strings"

const (
	SortNone      = ""
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// RangeFilter is an optional inclusive price bound. A nil side means the
// bound is not active.
type RangeFilter struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

func (r RangeFilter) Active() bool {
	return r.Min != nil || r.Max != nil
}

// Inverted reports min > max, which always yields an empty intersection.
func (r RangeFilter) Inverted() bool {
	return r.Min != nil && r.Max != nil && *r.Min > *r.Max
}

func (r RangeFilter) Contains(value float64) bool {
	if r.Min != nil && value < *r.Min {
		return false
	}
	if r.Max != nil && value > *r.Max {
		return false
	}
	return true
}

// FilterState is the full set of user selected query parameters. It is only
// mutated between recomputations, never during one.
type FilterState struct {
	SearchTerm string      `json:"query"`
	Categories []string    `json:"categories"`
	PriceRange RangeFilter `json:"price"`
	SortKey    string      `json:"sort"`
}

// Normalize trims the search term and case-folds categories so later
// matching is a plain comparison. The folded labels go into a fresh
// slice; the caller's backing array is never written through.
func (f *FilterState) Normalize() {
	f.SearchTerm = strings.TrimSpace(f.SearchTerm)
	if len(f.Categories) == 0 {
		return
	}
	folded := make([]string, len(f.Categories))
	for i, c := range f.Categories {
		folded[i] = strings.ToLower(strings.TrimSpace(c))
	}
	f.Categories = folded
}

// EqualCategory compares category labels the way the filter does:
// trimmed and case-insensitive.
func EqualCategory(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (f *FilterState) HasCategory(category string) bool {
	folded := strings.ToLower(category)
	for _, c := range f.Categories {
		if c == folded {
			return true
		}
	}
	return false
}

// Clone returns a copy safe to hand to another goroutine.
func (f *FilterState) Clone() FilterState {
	cp := *f
	cp.Categories = append([]string(nil), f.Categories...)
	if f.PriceRange.Min != nil {
		min := *f.PriceRange.Min
		cp.PriceRange.Min = &min
	}
	if f.PriceRange.Max != nil {
		max := *f.PriceRange.Max
		cp.PriceRange.Max = &max
	}
	return cp
}
