package server

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/n1kyfn/restaurant/pkg/cart"
	"github.com/n1kyfn/restaurant/pkg/common"
	"github.com/n1kyfn/restaurant/pkg/menu"
	"github.com/n1kyfn/restaurant/pkg/menuapi"
	"github.com/n1kyfn/restaurant/pkg/reviews"
)

var (
	menuSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restaurant_menu_searches",
		Help: "Menu catalog searches served",
	})
	menuFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restaurant_menu_fetch_failures",
		Help: "Upstream item API failures",
	})
	menuEmptyResults = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restaurant_menu_empty_results",
		Help: "Searches that matched nothing",
	})
)

type WebServer struct {
	Menu    *menu.Manager
	Cart    *cart.CartServer
	Reviews *reviews.ReviewServer
}

type errorResponse struct {
	Error string `json:"error"`
}

// SearchMenu runs one fetch/filter/paginate cycle for the request. A fetch
// failure is a distinct error state: no stale items, status 502 and an
// error body the front can show.
func (ws *WebServer) SearchMenu(w http.ResponseWriter, r *http.Request, enc *json.Encoder) error {
	sr := &SearchRequest{}
	if err := GetQueryFromRequest(r, sr); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return enc.Encode(errorResponse{Error: "invalid search request"})
	}
	menuSearches.Inc()

	result, err := ws.Menu.Query(r.Context(), sr.FilterState(), sr.Page, sr.Size())
	if err != nil {
		menuFetchFailures.Inc()
		w.WriteHeader(http.StatusBadGateway)
		return enc.Encode(errorResponse{Error: "menu unavailable"})
	}
	if result.Page.TotalItems == 0 {
		menuEmptyResults.Inc()
	}
	return enc.Encode(result)
}

// GetItem looks one item up in the unfiltered catalog.
func (ws *WebServer) GetItem(w http.ResponseWriter, r *http.Request, enc *json.Encoder) error {
	id := r.PathValue("id")
	items, err := ws.Menu.Repo.FetchItems(r.Context(), menuapi.Query{})
	if err != nil {
		menuFetchFailures.Inc()
		w.WriteHeader(http.StatusBadGateway)
		return enc.Encode(errorResponse{Error: "menu unavailable"})
	}
	for _, item := range items {
		if item.Id == id {
			return enc.Encode(item)
		}
	}
	w.WriteHeader(http.StatusNotFound)
	return enc.Encode(errorResponse{Error: "item not found"})
}

func (ws *WebServer) CreateHandler() *http.ServeMux {
	srv := http.NewServeMux()
	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	srv.HandleFunc("/api/menu", common.JsonHandler(ws.SearchMenu))
	srv.HandleFunc("GET /api/menu/{id}", common.JsonHandler(ws.GetItem))
	srv.HandleFunc("GET /api/cart", ws.Cart.GetItems)
	srv.HandleFunc("POST /api/cart", ws.Cart.AddItem)
	srv.HandleFunc("GET /api/reviews", ws.Reviews.List)
	srv.HandleFunc("POST /api/reviews", ws.Reviews.Create)
	srv.HandleFunc("DELETE /api/reviews/{id}", ws.Reviews.Delete)
	return srv
}
