package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voiceloop/quill/internal/anthropic"
	"github.com/voiceloop/quill/internal/api"
	"github.com/voiceloop/quill/internal/config"
	"github.com/voiceloop/quill/internal/events"
	"github.com/voiceloop/quill/internal/examples"
	"github.com/voiceloop/quill/internal/processor"
	"github.com/voiceloop/quill/internal/store"
	"github.com/voiceloop/quill/internal/topic"
	"github.com/voiceloop/quill/internal/voice"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("quill starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.EnsureSchema(ctx); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected")

	// Anthropic client
	if cfg.AnthropicAPIKey == "" {
		slog.Error("ANTHROPIC_API_KEY is required")
		os.Exit(1)
	}
	llm := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	slog.Info("anthropic client ready", "model", cfg.AnthropicModel)

	// NATS events (optional; quill works without them, just no downstream
	// notifications)
	var pub processor.Publisher
	if cfg.NatsURL != "" {
		ev, err := events.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer ev.Close()
		pub = ev
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured, running without events")
	}

	// Pipeline components
	classifier := topic.New(llm, slog.Default())
	selector := examples.New(db, slog.Default())
	extractor := voice.NewExtractor(llm, slog.Default())
	polisher := voice.NewPolisher(llm, slog.Default())
	proc := processor.New(db, classifier, selector, extractor, polisher, pub, slog.Default())

	// HTTP API
	limiter := api.NewRateLimiter(time.Duration(cfg.RateWindowSeconds)*time.Second, cfg.RateMaxRequests)
	srv := api.NewServer(cfg.Port, cfg.APIToken, cfg.MaxBodyBytes, limiter, proc, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("quill ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("quill stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
