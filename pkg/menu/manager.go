// Package menu owns the refresh orchestration: one FilterState/PageState
// pair, debounced recomputation on intent events, and listener
// notification. It never touches rendering.
package menu

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/n1kyfn/restaurant/pkg/catalog"
	"github.com/n1kyfn/restaurant/pkg/menuapi"
	"github.com/n1kyfn/restaurant/pkg/paging"
	"github.com/n1kyfn/restaurant/pkg/types"
)

const DefaultQuietPeriod = 500 * time.Millisecond

// Listener is the subscription surface for a presentation layer.
// OnFilteredListChanged carries the current page's slice, not the whole
// filtered list.
type Listener interface {
	OnFilteredListChanged(items []types.MenuItem)
	OnPageStateChanged(nav paging.Navigation)
	OnFetchError(err error)
}

// Result is one computed view of the catalog.
type Result struct {
	Items      []types.MenuItem  `json:"items"`
	Page       paging.PageState  `json:"page"`
	Navigation paging.Navigation `json:"navigation"`
}

type Manager struct {
	Repo        menuapi.Repository
	PageSize    int
	QuietPeriod time.Duration

	mu        sync.Mutex
	state     types.FilterState
	page      paging.PageState
	filtered  []types.MenuItem
	listeners []Listener
	debounce  *Debouncer
	seq       atomic.Uint64
}

func NewManager(repo menuapi.Repository) *Manager {
	m := &Manager{
		Repo:        repo,
		PageSize:    paging.DefaultPageSize,
		QuietPeriod: DefaultQuietPeriod,
	}
	m.page = paging.Paginate(0, m.PageSize, 0)
	return m
}

func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// State returns a copy of the current filter state.
func (m *Manager) State() types.FilterState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

func (m *Manager) PageState() paging.PageState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.page
}

// SetSearchTerm, SetCategories, ToggleCategory, SetPriceRange and SetSort
// are the debounced intent events. Each one resets the cursor to page 0;
// the refetch itself happens after the quiet period so keystroke bursts
// collapse into one repository call.

func (m *Manager) SetSearchTerm(term string) {
	m.mutate(func(s *types.FilterState) {
		s.SearchTerm = term
	})
}

func (m *Manager) SetCategories(categories []string) {
	m.mutate(func(s *types.FilterState) {
		s.Categories = append([]string(nil), categories...)
	})
}

func (m *Manager) ToggleCategory(category string) {
	m.mutate(func(s *types.FilterState) {
		if s.HasCategory(category) {
			kept := s.Categories[:0]
			for _, c := range s.Categories {
				if !types.EqualCategory(c, category) {
					kept = append(kept, c)
				}
			}
			s.Categories = kept
			return
		}
		s.Categories = append(s.Categories, category)
	})
}

func (m *Manager) SetPriceRange(min, max *float64) {
	m.mutate(func(s *types.FilterState) {
		s.PriceRange = types.RangeFilter{Min: min, Max: max}
	})
}

func (m *Manager) SetSort(sortKey string) {
	m.mutate(func(s *types.FilterState) {
		s.SortKey = sortKey
	})
}

func (m *Manager) mutate(fn func(*types.FilterState)) {
	m.mu.Lock()
	fn(&m.state)
	m.state.Normalize()
	// the fetched list belongs to the old criteria and must not stay
	// pageable while the refetch is pending
	m.filtered = nil
	m.page = paging.Paginate(0, m.PageSize, 0)
	if m.debounce == nil {
		m.debounce = NewDebouncer(m.QuietPeriod)
	}
	d := m.debounce
	m.mu.Unlock()

	d.Schedule(func() {
		m.Refresh(context.Background())
	})
}

// GoToPage navigates within the already-fetched filtered list. It is not
// debounced, never refetches and never changes the filter criteria or the
// page count.
func (m *Manager) GoToPage(page int) {
	m.mu.Lock()
	m.page = paging.Paginate(len(m.filtered), m.PageSize, page)
	slice := paging.Slice(m.filtered, m.page)
	nav := paging.NavigationState(m.page)
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	for _, l := range listeners {
		l.OnFilteredListChanged(slice)
		l.OnPageStateChanged(nav)
	}
}

// Refresh runs one full recomputation cycle: fetch with the current query
// parameters, re-apply the engine client side, reset the cursor and notify
// listeners. Overlapping refreshes resolve last-response-wins: a response
// that arrives after a newer refresh started is discarded unrendered.
func (m *Manager) Refresh(ctx context.Context) {
	seq := m.seq.Add(1)

	m.mu.Lock()
	state := m.state.Clone()
	m.mu.Unlock()

	items, err := m.Repo.FetchItems(ctx, menuapi.QueryFromState(state))
	if m.stale(seq) {
		return
	}
	if err != nil {
		m.publish(seq, nil, err)
		return
	}
	m.publish(seq, catalog.Apply(items, state), nil)
}

func (m *Manager) stale(seq uint64) bool {
	return seq != m.seq.Load()
}

func (m *Manager) publish(seq uint64, filtered []types.MenuItem, fetchErr error) {
	m.mu.Lock()
	if m.stale(seq) {
		m.mu.Unlock()
		return
	}
	m.filtered = filtered
	m.page = paging.Paginate(len(filtered), m.PageSize, 0)
	slice := paging.Slice(filtered, m.page)
	nav := paging.NavigationState(m.page)
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	for _, l := range listeners {
		if fetchErr != nil {
			l.OnFetchError(fetchErr)
		}
		l.OnFilteredListChanged(slice)
		l.OnPageStateChanged(nav)
	}
}

// Query is the stateless one-shot variant of a refresh cycle, used by the
// HTTP surface: same fetch, filter and paginate sequence, but against a
// caller-provided state and page instead of the manager's own. A
// non-positive pageSize falls back to the manager's.
func (m *Manager) Query(ctx context.Context, state types.FilterState, page, pageSize int) (*Result, error) {
	state.Normalize()
	items, err := m.Repo.FetchItems(ctx, menuapi.QueryFromState(state))
	if err != nil {
		return nil, err
	}
	filtered := catalog.Apply(items, state)
	if pageSize <= 0 {
		pageSize = m.PageSize
	}
	pageState := paging.Paginate(len(filtered), pageSize, page)
	return &Result{
		Items:      paging.Slice(filtered, pageState),
		Page:       pageState,
		Navigation: paging.NavigationState(pageState),
	}, nil
}
