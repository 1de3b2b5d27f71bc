package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/localaihub/hub-service/internal/config"
	"github.com/localaihub/hub-service/internal/fallback"
	"github.com/localaihub/hub-service/internal/handlers"
	"github.com/localaihub/hub-service/internal/logging"
	"github.com/localaihub/hub-service/internal/metrics"
	"github.com/localaihub/hub-service/internal/ollama"
	"github.com/localaihub/hub-service/internal/services"
	"github.com/localaihub/hub-service/internal/stats"
	"github.com/localaihub/hub-service/pkg/server"
)

func main() {
	var envFile = flag.String("env", "", "Optional .env file to load")
	flag.Parse()

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load(*envFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting LocalAIHub server",
		"http_addr", cfg.HTTPAddr,
		"ollama_url", cfg.OllamaURL,
		"default_model", cfg.DefaultModel,
		"log_file", cfg.LogFile)

	// Initialize components
	backend := ollama.NewClient(cfg.OllamaURL, cfg.RequestTimeout, cfg.ProbeTimeout)
	responder := fallback.NewResponder(cfg.DefaultModel)
	interactionLog := logging.New(cfg.LogFile)
	tracker := stats.NewTracker()
	generateMetrics := metrics.NewGenerateMetrics(nil)

	generateService := services.NewGenerateService(backend, responder, interactionLog, tracker, generateMetrics, cfg.DefaultModel)
	statusService := services.NewStatusService(tracker, backend, cfg.LogFile)

	httpServer := server.NewServer(cfg.HTTPAddr, handlers.NewHubHandler(generateService, statusService))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := httpServer.Start(ctx); err != nil {
			slog.Error("HTTP server failed", "error", err)
		}
	}()

	// NATS transport is optional: no URL means HTTP only, and a connect
	// failure degrades to HTTP only rather than killing the process.
	if cfg.NatsURL != "" {
		natsService, err := services.NewNATSService(cfg, generateService)
		if err != nil {
			slog.Warn("NATS unavailable, continuing with HTTP only", "nats_url", cfg.NatsURL, "error", err)
		} else {
			go func() {
				if err := natsService.Start(ctx); err != nil {
					slog.Error("NATS service failed", "error", err)
				}
			}()
		}
	}

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	slog.Info("Shutting down server")
}
