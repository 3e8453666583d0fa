// Package menuapi is the client for the upstream item API that owns the
// menu catalog. Search, category and sort parameters are delegated to the
// upstream; price bounds are not (the API has no such parameter) and are
// always enforced client side by the catalog engine.
package menuapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/n1kyfn/restaurant/pkg/types"
)

// ErrFetchFailed marks transport errors and non-success responses. Callers
// treat it as an empty catalog plus a visible error state, never as stale
// data to keep showing.
var ErrFetchFailed = errors.New("menu fetch failed")

// Query carries the parameters the upstream understands.
type Query struct {
	Title      string
	Categories []string
	SortKey    string
}

func QueryFromState(state types.FilterState) Query {
	return Query{
		Title:      state.SearchTerm,
		Categories: state.Categories,
		SortKey:    state.SortKey,
	}
}

// Values encodes the query the way the API expects it: `title` as a
// substring match, `category` values joined with `|` (OR-combined) and
// `sortBy=price&order=asc|desc`.
func (q Query) Values() url.Values {
	values := url.Values{}
	if title := strings.TrimSpace(q.Title); title != "" {
		values.Set("title", title)
	}
	if len(q.Categories) > 0 {
		values.Set("category", strings.Join(q.Categories, "|"))
	}
	switch q.SortKey {
	case types.SortPriceAsc:
		values.Set("sortBy", "price")
		values.Set("order", "asc")
	case types.SortPriceDesc:
		values.Set("sortBy", "price")
		values.Set("order", "desc")
	}
	return values
}

// Repository is the narrow interface the orchestrator and handlers consume.
type Repository interface {
	FetchItems(ctx context.Context, q Query) ([]types.MenuItem, error)
}

type Client struct {
	BaseUrl string
	Http    *http.Client
}

func NewClient(baseUrl string) *Client {
	return &Client{
		BaseUrl: strings.TrimRight(baseUrl, "/"),
		Http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) FetchItems(ctx context.Context, q Query) ([]types.MenuItem, error) {
	u := c.BaseUrl
	if query := q.Values().Encode(); query != "" {
		u += "?" + query
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.Http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %s", ErrFetchFailed, res.Status)
	}
	var items []types.MenuItem
	if err := sonic.ConfigDefault.NewDecoder(res.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return items, nil
}
