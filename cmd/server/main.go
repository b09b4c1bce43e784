/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the calendar engine server. Handles
  configuration, explicit dependency construction, and graceful
  shutdown. Nothing here uses ambient lookups: the clock, date
  primitives, registry, caches, and store are built once and passed
  down.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load YAML configuration
  3. Resolve the timezone and build date primitives
  4. Open the SQLite preset store
  5. Register built-in presets, then stored custom presets
  6. Start the HTTP server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  YAML config path (optional; defaults apply when missing)
  -listen  Listen address override (default from config)
  -db      SQLite database path override (":memory:" for in-memory)

EXAMPLES:
  ./server -config=./engine.yaml
  ./server -listen=:3000 -db=":memory:"
*/
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/calendar-engine/api"
	"github.com/warp/calendar-engine/cache"
	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/config"
	"github.com/warp/calendar-engine/preset"
	"github.com/warp/calendar-engine/store/sqlite"
)

func main() {
	configPath := flag.String("config", "", "YAML config path")
	listen := flag.String("listen", "", "listen address override")
	dbPath := flag.String("db", "", "SQLite database path override")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *dbPath != "" {
		cfg.Database = *dbPath
	}

	loc := time.Local
	if cfg.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Error("invalid timezone", "timezone", cfg.Timezone, "err", err)
			os.Exit(1)
		}
	}

	dates := calendar.NewDates(loc)
	clock := calendar.SystemClock{}

	registry := preset.NewRegistry(log)
	if err := registry.RegisterAll(preset.Builtins()); err != nil {
		log.Error("failed to register built-in presets", "err", err)
		os.Exit(1)
	}
	resolver := preset.NewResolver(registry, clock, dates, log)

	presetStore, err := sqlite.New(cfg.Database)
	if err != nil {
		log.Error("failed to open preset store", "err", err)
		os.Exit(1)
	}
	defer presetStore.Close()

	handler := api.NewHandler(
		dates,
		cache.NewGridCache(dates, cfg.GridCacheSize),
		cache.NewHighlightCache(cfg.HighlightCacheSize),
		registry,
		resolver,
		presetStore,
		cfg,
		log,
	)
	if err := handler.LoadPresets(context.Background()); err != nil {
		log.Warn("failed to load stored presets", "err", err)
	}

	server := &http.Server{
		Addr:         cfg.Listen,
		Handler:      api.NewRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", cfg.Listen, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "err", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
