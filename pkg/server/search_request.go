package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/n1kyfn/restaurant/pkg/paging"
	"github.com/n1kyfn/restaurant/pkg/types"
)

// SearchRequest mirrors the query parameters the menu front sends:
// ?query=pizza&cat=drinks&cat=desserts&min=10&max=20&sort=price_asc&page=0
type SearchRequest struct {
	Query      string   `json:"query" schema:"query"`
	Categories []string `json:"categories" schema:"cat"`
	MinPrice   *float64 `json:"min" schema:"min"`
	MaxPrice   *float64 `json:"max" schema:"max"`
	Sort       string   `json:"sort" schema:"sort"`
	Page       int      `json:"page" schema:"page"`
	PageSize   int      `json:"pageSize" schema:"size,default:15"`
}

func GetQueryFromRequest(r *http.Request, searchRequest *SearchRequest) error {
	if r.Method == http.MethodGet {
		return queryFromRequestQuery(r.URL.Query(), searchRequest)
	}
	return json.NewDecoder(r.Body).Decode(searchRequest)
}

func queryFromRequestQuery(query url.Values, result *SearchRequest) error {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return decoder.Decode(result, query)
}

// FilterState maps the request onto the engine's state. The old shop front
// sent sort as lowest/highest; both spellings are accepted.
func (s *SearchRequest) FilterState() types.FilterState {
	state := types.FilterState{
		SearchTerm: s.Query,
		Categories: s.Categories,
		PriceRange: types.RangeFilter{Min: s.MinPrice, Max: s.MaxPrice},
	}
	switch s.Sort {
	case types.SortPriceAsc, "lowest":
		state.SortKey = types.SortPriceAsc
	case types.SortPriceDesc, "highest":
		state.SortKey = types.SortPriceDesc
	default:
		state.SortKey = types.SortNone
	}
	state.Normalize()
	return state
}

func (s *SearchRequest) Size() int {
	if s.PageSize <= 0 {
		return paging.DefaultPageSize
	}
	return s.PageSize
}
