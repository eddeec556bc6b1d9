// Package listing filters, sorts and paginates lists fetched from the backend.
package listing

import (
	"sort"
	"strings"
)

// DefaultLimit is the page size the console requests.
const DefaultLimit = 100

// Filter keeps the items where any field contains term, ignoring case.
// An empty term keeps everything.
func Filter[T any](items []T, term string, fields ...func(T) string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(it)), term) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// SortBy returns a copy of items stably ordered by less.
func SortBy[T any](items []T, less func(a, b T) bool) []T {
	out := append([]T(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Page is a zero-based page of a skip/limit listing.
type Page struct {
	Index int `json:"page"`
	Limit int `json:"limit"`
}

// NewPage clamps index to zero and falls back to DefaultLimit.
func NewPage(index, limit int) Page {
	if index < 0 {
		index = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Page{Index: index, Limit: limit}
}

func (p Page) Skip() int {
	return p.Index * p.Limit
}

// Window describes the pager controls after a fetch.
type Window struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
}

// Window reports pager state given how many rows the backend returned.
// A short page disables Next.
func (p Page) Window(fetched int) Window {
	return Window{
		Page:    p.Index,
		Limit:   p.Limit,
		HasPrev: p.Index > 0,
		HasNext: fetched >= p.Limit,
	}
}
