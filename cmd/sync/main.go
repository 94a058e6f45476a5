package main

import (
	"os"
	"time"

	"github.com/singerjob/singerjob/internal/apiclient"
	"github.com/singerjob/singerjob/internal/catalog"
	"github.com/singerjob/singerjob/internal/config"
	"github.com/singerjob/singerjob/internal/observability"
	"github.com/singerjob/singerjob/internal/store"
)

// sync pulls the upstream opportunity catalog into the local store
// once and exits. Run it from cron or a scheduler; the api server
// itself never talks upstream.
func main() {
	cfg := config.Load()
	log := observability.NewLogger(cfg.Env)

	st, err := store.Open(store.Config{
		Backend: store.Backend(cfg.StoreBackend),
		Redis: store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		PostgresURL: cfg.DBURL,
	})

	if err != nil {
		log.Error("store open failed", "backend", cfg.StoreBackend, "err", err)
		os.Exit(1)
	}

	client := apiclient.New(apiclient.Config{
		BaseURL: cfg.UpstreamBaseURL,
		Timeout: cfg.UpstreamTimeout,
	}, st, log)

	syncer := catalog.NewSyncer(client, st, log)

	ctx, cancel := config.WithTimeout(30 * time.Second)
	defer cancel()

	if _, err := syncer.Sync(ctx); err != nil {
		log.Error("catalog sync failed", "err", err)
		os.Exit(1)
	}
}
