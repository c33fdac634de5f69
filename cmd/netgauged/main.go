// Command netgauged is the netgauge platform service. It serves on-demand
// assessment and history endpoints, a health check, and Prometheus metrics.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/netgauge/netgauge/internal/api"
	"github.com/netgauge/netgauge/internal/history"
	"github.com/netgauge/netgauge/internal/platform"
	"github.com/netgauge/netgauge/internal/scout"
	"github.com/netgauge/netgauge/pkg/config"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(log)

	configPath := envOrDefault("NETGAUGE_CONFIG", "")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error("loading config failed", "path", configPath, "err", err)
		os.Exit(1)
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}

	// Hot-reloadable config: in-flight requests load one consistent snapshot.
	var liveCfg atomic.Pointer[config.Config]
	liveCfg.Store(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if configPath != "" {
		go func() {
			err := config.Watch(ctx, configPath, log, func(next *config.Config) {
				liveCfg.Store(next)
			})
			if err != nil {
				log.Error("config watch stopped", "err", err)
			}
		}()
	}

	var db *sql.DB
	var hist *history.Service
	if cfg.Database.URL != "" {
		db, err = platform.OpenDB(ctx, cfg.Database.URL)
		if err != nil {
			log.Error("database setup failed", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		hist = history.NewService(db)
	} else {
		log.Warn("no database configured, history endpoints disabled")
	}

	prober := scout.NewClient(cfg.Scout)
	handler := api.NewHandler(&liveCfg, prober, hist, log)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", healthHandler(db))

	srv := &http.Server{
		Addr:              ":" + envOrDefault("PORT", "8080"),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting netgauged", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen failed", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "err", err)
	}
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				http.Error(w, "database unreachable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
