package menuapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/n1kyfn/restaurant/pkg/types"
)

func TestQueryValues(t *testing.T) {
	q := Query{
		Title:      " pizza ",
		Categories: []string{"drinks", "desserts"},
		SortKey:    types.SortPriceDesc,
	}
	values := q.Values()
	if values.Get("title") != "pizza" {
		t.Errorf("Expected trimmed title, got %q", values.Get("title"))
	}
	if values.Get("category") != "drinks|desserts" {
		t.Errorf("Expected pipe-joined categories, got %q", values.Get("category"))
	}
	if values.Get("sortBy") != "price" || values.Get("order") != "desc" {
		t.Errorf("Expected sortBy=price order=desc, got %q %q", values.Get("sortBy"), values.Get("order"))
	}
}

func TestQueryValuesEmptyState(t *testing.T) {
	values := Query{}.Values()
	if len(values) != 0 {
		t.Errorf("Expected no parameters for empty query, got %v", values)
	}
}

func TestQueryValuesAscending(t *testing.T) {
	values := Query{SortKey: types.SortPriceAsc}.Values()
	if values.Get("order") != "asc" {
		t.Errorf("Expected ascending order, got %q", values.Get("order"))
	}
}

func TestFetchItems(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("title") != "pizza" {
			t.Errorf("Expected title param, got %q", r.URL.Query().Get("title"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"1","title":"Pepperoni Pizza","category":"pizza","price":12.5},
			{"id":"2","title":"Margherita","category":"pizza","price":"10","oldPrice":11}
		]`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL)
	items, err := client.FetchItems(context.Background(), Query{Title: "pizza"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if price, ok := items[0].GetPrice(); !ok || price != 12.5 {
		t.Errorf("Expected numeric price 12.5, got %v %v", price, ok)
	}
	if price, ok := items[1].GetPrice(); !ok || price != 10 {
		t.Errorf("Expected quoted price 10 parsed, got %v %v", price, ok)
	}
}

func TestFetchItemsNonSuccessStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL)
	_, err := client.FetchItems(context.Background(), Query{})
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("Expected ErrFetchFailed, got %v", err)
	}
}

func TestFetchItemsTransportError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	_, err := client.FetchItems(context.Background(), Query{})
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("Expected ErrFetchFailed, got %v", err)
	}
}

func TestFetchItemsBadPayload(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL)
	_, err := client.FetchItems(context.Background(), Query{})
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("Expected ErrFetchFailed for bad payload, got %v", err)
	}
}
