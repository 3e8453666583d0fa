// Package paging derives page state and navigation state from the length
// of the filtered catalog.
package paging

import "github.com/n1kyfn/restaurant/pkg/types"

const DefaultPageSize = 15

// PageState is the pagination cursor, recomputed whenever the filtered
// list changes.
type PageState struct {
	PageSize    int `json:"pageSize"`
	CurrentPage int `json:"currentPage"`
	PageCount   int `json:"pageCount"`
	TotalItems  int `json:"totalItems"`
}

type PageButton struct {
	Index    int  `json:"index"`
	IsActive bool `json:"isActive"`
}

// Navigation is what a presentation layer needs to draw the pagination
// controls. Visible is false whenever everything fits on one page; the
// controls are then hidden entirely, not just disabled.
type Navigation struct {
	Visible     bool         `json:"visible"`
	PrevEnabled bool         `json:"prevEnabled"`
	NextEnabled bool         `json:"nextEnabled"`
	PageButtons []PageButton `json:"pageButtons"`
}

// Paginate clamps the requested zero-based page into the valid range for
// the given filtered count. An empty list pins the cursor to page 0 with
// zero pages.
func Paginate(filteredCount, pageSize, requestedPage int) PageState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pageCount := 0
	if filteredCount > 0 {
		pageCount = (filteredCount + pageSize - 1) / pageSize
	}
	page := requestedPage
	if page < 0 {
		page = 0
	}
	if page > pageCount-1 {
		page = max(pageCount-1, 0)
	}
	return PageState{
		PageSize:    pageSize,
		CurrentPage: page,
		PageCount:   pageCount,
		TotalItems:  filteredCount,
	}
}

// Slice returns the current page's window of the filtered list.
func Slice(filtered []types.MenuItem, state PageState) []types.MenuItem {
	start := state.CurrentPage * state.PageSize
	if start >= len(filtered) {
		return []types.MenuItem{}
	}
	end := min(start+state.PageSize, len(filtered))
	return filtered[start:end]
}

// NavigationState derives the control state for the current page. There is
// exactly one button per page, with the current one marked active.
func NavigationState(state PageState) Navigation {
	nav := Navigation{
		Visible:     state.TotalItems > state.PageSize,
		PrevEnabled: state.CurrentPage > 0,
		NextEnabled: state.CurrentPage < state.PageCount-1,
		PageButtons: make([]PageButton, state.PageCount),
	}
	for i := range nav.PageButtons {
		nav.PageButtons[i] = PageButton{
			Index:    i,
			IsActive: i == state.CurrentPage,
		}
	}
	return nav
}
