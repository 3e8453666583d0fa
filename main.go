package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/n1kyfn/restaurant/pkg/cart"
	"github.com/n1kyfn/restaurant/pkg/common"
	"github.com/n1kyfn/restaurant/pkg/menu"
	"github.com/n1kyfn/restaurant/pkg/menuapi"
	"github.com/n1kyfn/restaurant/pkg/messaging"
	"github.com/n1kyfn/restaurant/pkg/reviews"
	"github.com/n1kyfn/restaurant/pkg/server"
)

var enableProfiling = flag.Bool("profiling", true, "enable profiling endpoints")

var itemApiUrl = getenv("ITEM_API_URL", "https://menu-api.mocks.dev/items")
var reviewApiUrl = getenv("REVIEW_API_URL", "https://review-api.mocks.dev/reviews")
var redisUrl = os.Getenv("REDIS_URL")
var redisPassword = os.Getenv("REDIS_PASSWORD")
var rabbitUrl = os.Getenv("RABBIT_URL")
var rabbitVHost = os.Getenv("RABBIT_HOST")
var cartPath = getenv("CART_PATH", "data/cart")
var listenAddress = getenv("LISTEN_ADDRESS", ":8080")
var debugAddress = getenv("DEBUG_ADDRESS", ":8081")

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func startDebugServer() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if *enableProfiling {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/heap", pprof.Handler("heap").ServeHTTP)
	}
	go func() {
		log.Printf("starting debug server on %s", debugAddress)
		if err := http.ListenAndServe(debugAddress, mux); err != nil {
			log.Printf("debug server stopped: %v", err)
		}
	}()
}

func main() {
	flag.Parse()

	repo := menuapi.Repository(menuapi.NewClient(itemApiUrl))

	var cache *server.Cache
	var cachedRepo *server.CachedRepository
	var cartStorage cart.Storage

	if redisUrl != "" {
		cache = server.NewCache(redisUrl, redisPassword, 0)
		cachedRepo = &server.CachedRepository{Inner: repo, Cache: cache, Ttl: 5 * time.Minute}
		repo = cachedRepo
		cartStorage = cart.NewRedisStorage(redisUrl, redisPassword, 1)
		log.Printf("using redis at %s for cache and cart", redisUrl)
	} else {
		cartStorage = cart.NewDiskStorage(cartPath)
		log.Printf("using disk cart storage at %s", cartPath)
	}

	manager := menu.NewManager(repo)

	if rabbitUrl != "" && cachedRepo != nil {
		cfg := messaging.RabbitConfig{Url: rabbitUrl, VHost: rabbitVHost}
		conn, err := cfg.Connect()
		if err != nil {
			log.Fatalf("rabbit connect failed: %v", err)
		}
		err = messaging.ListenForMenuChanges(conn, cfg, func(change messaging.MenuChanged) error {
			log.Printf("menu changed (%d ids), flushing catalog cache", len(change.Ids))
			return cachedRepo.Invalidate()
		})
		if err != nil {
			log.Fatalf("rabbit listen failed: %v", err)
		}
	}

	ws := &server.WebServer{
		Menu:    manager,
		Cart:    &cart.CartServer{Storage: cartStorage},
		Reviews: &reviews.ReviewServer{Client: reviews.NewClient(reviewApiUrl)},
	}

	startDebugServer()

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       30 * time.Second,
		Write:      30 * time.Second,
		Idle:       120 * time.Second,
		Shutdown:   15 * time.Second,
		Hook:       5 * time.Second,
	})
	srv := common.NewServerWithTimeouts(&http.Server{
		Addr:    listenAddress,
		Handler: ws.CreateHandler(),
	}, timeouts)

	common.RunServerWithShutdown(srv, "menu service", timeouts.Shutdown, timeouts.Hook, func(ctx context.Context) error {
		if cache != nil {
			cache.Close()
		}
		return nil
	})
}
