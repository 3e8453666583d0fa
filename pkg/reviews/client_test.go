package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func reviewUpstream(t *testing.T) (*httptest.Server, *[]Review) {
	t.Helper()
	stored := &[]Review{
		{Id: "1", Name: "Anna", Title: "Great", Rating: 5, ProductTitle: "Pepperoni Pizza"},
		{Id: "2", Name: "Ben", Title: "Cold", Rating: 2, ProductTitle: "Minestrone"},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(*stored)
		case r.Method == http.MethodPost:
			var review Review
			if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			review.Id = "3"
			*stored = append(*stored, review)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(review)
		case r.Method == http.MethodDelete:
			id := strings.TrimPrefix(r.URL.Path, "/")
			kept := (*stored)[:0]
			for _, review := range *stored {
				if review.Id != id {
					kept = append(kept, review)
				}
			}
			*stored = kept
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	t.Cleanup(server.Close)
	return server, stored
}

func TestListReviews(t *testing.T) {
	upstream, _ := reviewUpstream(t)
	client := NewClient(upstream.URL)

	all, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 reviews, got %d", len(all))
	}
}

func TestListForProduct(t *testing.T) {
	upstream, _ := reviewUpstream(t)
	client := NewClient(upstream.URL)

	matching, err := client.ListForProduct(context.Background(), "pepperoni pizza")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(matching) != 1 || matching[0].Id != "1" {
		t.Errorf("Expected the pizza review only, got %v", matching)
	}
}

func TestCreateReview(t *testing.T) {
	upstream, stored := reviewUpstream(t)
	client := NewClient(upstream.URL)

	created, err := client.Create(context.Background(), Review{
		Name: "Cleo", Title: "Lovely", Rating: 4, ProductTitle: "Tiramisu",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if created.Id == "" {
		t.Errorf("Expected upstream id on created review")
	}
	if len(*stored) != 3 {
		t.Errorf("Expected review stored upstream, got %d", len(*stored))
	}
}

func TestCreateReviewRatingBounds(t *testing.T) {
	upstream, stored := reviewUpstream(t)
	client := NewClient(upstream.URL)

	for _, rating := range []int{0, 6, -1} {
		_, err := client.Create(context.Background(), Review{Name: "X", Rating: rating})
		if !errors.Is(err, ErrInvalidRating) {
			t.Errorf("Expected ErrInvalidRating for %d, got %v", rating, err)
		}
	}
	if len(*stored) != 2 {
		t.Errorf("Expected rejected reviews never sent upstream")
	}
}

func TestDeleteReview(t *testing.T) {
	upstream, stored := reviewUpstream(t)
	client := NewClient(upstream.URL)

	if err := client.Delete(context.Background(), "1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(*stored) != 1 || (*stored)[0].Id != "2" {
		t.Errorf("Expected review 1 removed, got %v", *stored)
	}
}

func TestListUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL)
	if _, err := client.List(context.Background()); err == nil {
		t.Errorf("Expected error for upstream 500")
	}
}
