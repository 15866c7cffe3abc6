package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"gemstore/internal/config"
	"gemstore/internal/httpserver"
	"gemstore/internal/logger"
	"gemstore/internal/obs"
	"gemstore/internal/services/admindir"
	"gemstore/internal/services/cart"
	"gemstore/internal/services/catalog"
	"gemstore/internal/services/hold"
	"gemstore/internal/services/inquiry"
	"gemstore/internal/session"
	"gemstore/internal/upstream"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()

	cfg, err := config.Load()
	if err != nil {
		lg.Fatalw("config load failed", "error", err)
	}

	obs.Init()

	api, err := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, lg)
	if err != nil {
		lg.Fatalw("backend client init failed", "error", err)
	}

	store := session.NewStore(cfg.SessionTTL, cfg.SessionSweep)
	defer store.Close()

	router := httpserver.NewRouter(httpserver.Deps{
		Log:               lg,
		Store:             store,
		Sessions:          session.NewService(api, store, lg),
		Catalog:           catalog.NewService(api, cfg.SimilarLookupLimit, lg),
		Cart:              cart.NewService(api, lg),
		Hold:              hold.NewService(api, lg),
		Inquiry:           inquiry.NewService(api, lg),
		Admin:             admindir.NewService(api, lg),
		AuthRatePerSecond: cfg.AuthRatePerSecond,
		AuthRateBurst:     cfg.AuthRateBurst,
	})

	lg.Infow("listening", "port", cfg.HTTPPort, "backend", cfg.UpstreamBaseURL)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatal(err)
	}
}
