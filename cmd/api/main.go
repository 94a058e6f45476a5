package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/singerjob/singerjob/internal/config"
	"github.com/singerjob/singerjob/internal/filestore"
	httpx "github.com/singerjob/singerjob/internal/http"
	"github.com/singerjob/singerjob/internal/observability"
	"github.com/singerjob/singerjob/internal/store"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)

	// tracing is opt-in; without an endpoint the app runs untraced
	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(context.Background(), "singerjob", cfg.OTLPEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()

			if err := shutdownTracer(ctx); err != nil {
				log.Error("tracer shutdown failed", "err", err)
			}
		}()
	}

	// open the configured store backend
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

	defer closeStore(st, log)

	// upload storage backend
	storage, err := filestore.New(filestore.Config{
		Type:         filestore.BackendType(cfg.StorageType),
		LocalPath:    cfg.StorageLocalPath,
		BaseURL:      cfg.PublicBaseURL,
		S3Bucket:     cfg.S3Bucket,
		S3Region:     cfg.S3Region,
		AWSAccessKey: cfg.AWSAccessKey,
		AWSSecretKey: cfg.AWSSecretKey,
	})

	if err != nil {
		log.Error("filestore init failed", "type", cfg.StorageType, "err", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// set up routers with the wired dependencies
	router := httpx.NewRouter(httpx.Deps{
		Cfg:      cfg,
		Log:      log,
		Store:    st,
		Ping:     pingFunc(st),
		Storage:  storage,
		Registry: reg,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server using a concurrent go-routine driven anonymous function.

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreBackend)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctxTimeOut := 10 * time.Second

		ctx, cancel := config.WithTimeout(ctxTimeOut)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

// pingFunc exposes backend liveness to the readiness probe. The
// in-memory store has no connection to check, so it always reports ok.
func pingFunc(st store.Store) func() error {
	type pinger interface {
		Ping(ctx context.Context) error
	}

	p, ok := st.(pinger)

	if !ok {
		return func() error { return nil }
	}

	return func() error {
		ctx, cancel := config.WithTimeout(2 * time.Second)
		defer cancel()

		return p.Ping(ctx)
	}
}

func closeStore(st store.Store, log *slog.Logger) {
	type closer interface{ Close() }
	type errCloser interface{ Close() error }

	switch c := st.(type) {
	case errCloser:
		if err := c.Close(); err != nil {
			log.Error("store close failed", "err", err)
		}
	case closer:
		c.Close()
	}
}
