package cart

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cartAdds = promauto.NewCounter(prometheus.CounterOpts{
	Name: "restaurant_cart_adds",
	Help: "Items appended to carts",
})

type CartServer struct {
	Storage Storage
}

// handleCartCookie binds the request to an anonymous cart. A missing or
// empty cookie gets a fresh uuid so the next request hits the same cart.
func handleCartCookie(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie("cartid")
	if err == nil && c.Value != "" {
		return c.Value
	}
	cartId := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     "cartid",
		Value:    cartId,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   2592000,
	})
	return cartId
}

func (s *CartServer) GetItems(w http.ResponseWriter, r *http.Request) {
	cartId := handleCartCookie(w, r)
	items, err := s.Storage.GetItems(cartId)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Error getting cart"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(items); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *CartServer) AddItem(w http.ResponseWriter, r *http.Request) {
	cartId := handleCartCookie(w, r)
	var item CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Invalid item"))
		return
	}
	if item.Title == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Missing title"))
		return
	}
	items, err := s.Storage.AddItem(cartId, item)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Error adding item"))
		return
	}
	cartAdds.Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(items); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
