package reviews

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ReviewServer proxies the upstream review API so the front only ever
// talks to one origin.
type ReviewServer struct {
	Client *Client
}

func (s *ReviewServer) List(w http.ResponseWriter, r *http.Request) {
	product := r.URL.Query().Get("product")
	var (
		result []Review
		err    error
	)
	if product != "" {
		result, err = s.Client.ListForProduct(r.Context(), product)
	} else {
		result, err = s.Client.List(r.Context())
	}
	if err != nil {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("Error fetching reviews"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *ReviewServer) Create(w http.ResponseWriter, r *http.Request) {
	var review Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Invalid review"))
		return
	}
	created, err := s.Client.Create(r.Context(), review)
	if err != nil {
		if errors.Is(err, ErrInvalidRating) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(err.Error()))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("Error creating review"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *ReviewServer) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Missing review id"))
		return
	}
	if err := s.Client.Delete(r.Context(), id); err != nil {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("Error deleting review"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
