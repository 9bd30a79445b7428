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

	"github.com/pkg/browser"

	"github.com/use-agent/scrapeboard/api"
	"github.com/use-agent/scrapeboard/config"
	"github.com/use-agent/scrapeboard/fetcher"
	"github.com/use-agent/scrapeboard/history"
	"github.com/use-agent/scrapeboard/panel"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("scrapeboard starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
	)

	// ── 3. Build fetchers ───────────────────────────────────────────
	// The browser launches lazily on the first stealthy/playwright fetch,
	// so the panel runs on hosts without Chromium.
	shared := fetcher.NewBrowser(cfg.Browser)
	defer shared.Close()

	registry := fetcher.NewRegistry(
		fetcher.NewBasicFetcher(cfg.Browser.DefaultProxy),
		fetcher.NewStealthyFetcher(shared),
		fetcher.NewPlaywrightFetcher(shared),
	)
	for _, name := range registry.Names() {
		slog.Info("fetcher registered", "name", name, "available", registry.Available(name))
	}

	// ── 4. Wire the panel ───────────────────────────────────────────
	p := panel.New(registry, history.New(), cfg.Fetch.Timeout)

	// ── 5. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(p, cfg, startTime)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("control panel listening", "url", "http://"+addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 6b. Open the UI in the default browser ──────────────────────
	if cfg.Server.OpenBrowser {
		go func() {
			time.Sleep(1500 * time.Millisecond)
			if err := browser.OpenURL("http://" + addr); err != nil {
				slog.Warn("failed to open browser", "error", err)
			}
		}()
	}

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	// shared.Close() runs via defer: drains the page pool and kills Chromium.
	slog.Info("scrapeboard stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
