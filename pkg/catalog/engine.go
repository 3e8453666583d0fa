// Package catalog holds the pure filter and sort engine for menu items.
package catalog

import (
	"slices"
	"strings"

	"github.com/n1kyfn/restaurant/pkg/types"
)

// Apply filters and sorts a fetched item set against the current filter
// state. It is a pure function: the input slice is never mutated and the
// result is always a fresh slice. An empty result is a valid "no matches"
// state, not an error.
//
// Predicate semantics:
//   - search term matches case-insensitively as a title substring
//   - selected categories are OR-combined, case-insensitive
//   - price bounds are inclusive; an inverted range (min > max) matches
//     nothing
//   - items without a usable price are excluded from any active price
//     filter
func Apply(items []types.MenuItem, state types.FilterState) []types.MenuItem {
	state.Normalize()

	term := strings.ToLower(state.SearchTerm)
	result := make([]types.MenuItem, 0, len(items))

	for _, item := range items {
		if !matches(&item, term, &state) {
			continue
		}
		result = append(result, item)
	}

	sortByPrice(result, state.SortKey)
	return result
}

func matches(item *types.MenuItem, term string, state *types.FilterState) bool {
	if term != "" && !strings.Contains(strings.ToLower(item.Title), term) {
		return false
	}
	if len(state.Categories) > 0 && !state.HasCategory(item.Category) {
		return false
	}
	if state.PriceRange.Active() {
		if state.PriceRange.Inverted() {
			return false
		}
		price, ok := item.GetPrice()
		if !ok {
			return false
		}
		return state.PriceRange.Contains(price)
	}
	return true
}

// sortByPrice sorts in place. Items without a usable price sort last so a
// priced listing never starts with holes. The sort is stable: equal prices
// keep their fetched order under either direction.
func sortByPrice(items []types.MenuItem, sortKey string) {
	if sortKey != types.SortPriceAsc && sortKey != types.SortPriceDesc {
		return
	}
	desc := sortKey == types.SortPriceDesc
	slices.SortStableFunc(items, func(a, b types.MenuItem) int {
		ap, aok := a.GetPrice()
		bp, bok := b.GetPrice()
		if !aok || !bok {
			if aok {
				return -1
			}
			if bok {
				return 1
			}
			return 0
		}
		if ap == bp {
			return 0
		}
		if (ap < bp) != desc {
			return -1
		}
		return 1
	})
}
