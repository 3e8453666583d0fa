package cart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCartServerRoundTrip(t *testing.T) {
	server := &CartServer{Storage: NewDiskStorage(t.TempDir())}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{"title":"Pizza","price":12}`))
	server.AddItem(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	cookies := w.Result().Cookies()
	var cartCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == "cartid" {
			cartCookie = c
		}
	}
	if cartCookie == nil {
		t.Fatal("Expected cartid cookie on first request")
	}

	// same cookie, second add
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{"title":"Cola","price":"3"}`))
	req.AddCookie(cartCookie)
	server.AddItem(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(cartCookie)
	server.GetItems(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var items []CartItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("Bad body: %v", err)
	}
	if len(items) != 2 || items[0].Title != "Pizza" || items[1].Title != "Cola" {
		t.Errorf("Expected appended order [Pizza Cola], got %v", items)
	}
}

func TestCartServerRejectsBadItem(t *testing.T) {
	server := &CartServer{Storage: NewDiskStorage(t.TempDir())}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`not json`))
	server.AddItem(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad json, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{"price":3}`))
	server.AddItem(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing title, got %d", w.Code)
	}
}
