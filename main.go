// ABOUTME: Entry point for the print cost analyzer API service
// ABOUTME: Wires config, cache, handlers, and middleware into an HTTP server

package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Bibekdka/3dd/cache"
	"github.com/Bibekdka/3dd/config"
	"github.com/Bibekdka/3dd/handlers"
	"github.com/Bibekdka/3dd/logger"
	"github.com/Bibekdka/3dd/middleware"
)

func main() {
	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting print cost analyzer backend")
	if cfg.AIConfigured() {
		slog.Info("AI advisory configured", "models", cfg.AIModels)
	} else {
		slog.Warn("AI advisory not configured, running with canned analyses")
	}
	slog.Info("History ledger", "file", cfg.HistoryFile)

	// Initialize cache
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New(cacheTTL)
	slog.Info("Cache initialized", "ttl", cacheTTL)

	// Initialize handlers
	h := handlers.NewHandler(cfg, c)

	// Register routes with recovery, logging, and CORS middleware
	for _, route := range h.Routes() {
		handler := middleware.Chain(route.Handler,
			middleware.Recover,
			middleware.LogRequest,
			middleware.CORS,
		)
		if route.Method != "" {
			handler = enforceMethod(route.Method, handler)
		}
		http.HandleFunc(route.Path, handler)
	}

	// Start server
	addr := ":" + cfg.Port
	slog.Info("Server listening", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// enforceMethod rejects requests whose method does not match the route.
// OPTIONS passes through so CORS preflight still works.
func enforceMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method && r.Method != http.MethodOptions {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}
