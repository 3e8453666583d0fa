package server

import (
	"net/url"
	"testing"

	"github.com/n1kyfn/restaurant/pkg/types"
)

func TestParseQueryValues(t *testing.T) {
	query := url.Values{
		"query": []string{"pizza"},
		"cat":   []string{"drinks", "desserts"},
		"min":   []string{"10"},
		"max":   []string{"20"},
		"sort":  []string{"price_asc"},
		"page":  []string{"1"},
		"size":  []string{"10"},
	}
	sr := &SearchRequest{}
	if err := queryFromRequestQuery(query, sr); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if sr.Query != "pizza" {
		t.Errorf("Expected query pizza, got %q", sr.Query)
	}
	if len(sr.Categories) != 2 || sr.Categories[0] != "drinks" || sr.Categories[1] != "desserts" {
		t.Errorf("Expected categories [drinks desserts], got %v", sr.Categories)
	}
	if sr.MinPrice == nil || *sr.MinPrice != 10 {
		t.Errorf("Expected min 10, got %v", sr.MinPrice)
	}
	if sr.MaxPrice == nil || *sr.MaxPrice != 20 {
		t.Errorf("Expected max 20, got %v", sr.MaxPrice)
	}
	if sr.Page != 1 {
		t.Errorf("Expected page 1, got %d", sr.Page)
	}
	if sr.PageSize != 10 {
		t.Errorf("Expected size 10, got %d", sr.PageSize)
	}
}

func TestParseQueryDefaults(t *testing.T) {
	sr := &SearchRequest{}
	if err := queryFromRequestQuery(url.Values{}, sr); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if sr.PageSize != 15 {
		t.Errorf("Expected default page size 15, got %d", sr.PageSize)
	}
	if sr.MinPrice != nil || sr.MaxPrice != nil {
		t.Errorf("Expected absent bounds to stay nil")
	}
	if sr.Page != 0 {
		t.Errorf("Expected page 0, got %d", sr.Page)
	}
}

func TestParseQueryIgnoresUnknownKeys(t *testing.T) {
	sr := &SearchRequest{}
	err := queryFromRequestQuery(url.Values{"utm_source": []string{"mail"}}, sr)
	if err != nil {
		t.Errorf("Expected unknown keys ignored, got %v", err)
	}
}

func TestFilterStateMapping(t *testing.T) {
	sr := &SearchRequest{Query: " pizza ", Sort: "highest", Categories: []string{"Drinks"}}
	state := sr.FilterState()
	if state.SearchTerm != "pizza" {
		t.Errorf("Expected trimmed term, got %q", state.SearchTerm)
	}
	if state.SortKey != types.SortPriceDesc {
		t.Errorf("Expected highest mapped to price_desc, got %q", state.SortKey)
	}
	if !state.HasCategory("drinks") {
		t.Errorf("Expected folded category, got %v", state.Categories)
	}

	sr = &SearchRequest{Sort: "lowest"}
	if sr.FilterState().SortKey != types.SortPriceAsc {
		t.Errorf("Expected lowest mapped to price_asc")
	}

	sr = &SearchRequest{Sort: "weird"}
	if sr.FilterState().SortKey != types.SortNone {
		t.Errorf("Expected unknown sort mapped to none")
	}
}
