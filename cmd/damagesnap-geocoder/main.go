// Command damagesnap-geocoder serves POST /api/geocode, resolving free-text
// locations to coordinates with a language model.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"damagesnap/internal/bootstrap"
	"damagesnap/internal/config"
	"damagesnap/internal/observability"
	"damagesnap/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatalf("Invalid server configuration: %v", err)
	}

	rtm, err := bootstrap.InitGeocoder(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize geocoder: %v", err)
	}
	observability.Logger.Info("configuration loaded", slog.Any("config", cfg))

	srv := server.NewServer(cfg, rtm.Redis, rtm.Service)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		observability.Logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			observability.Logger.Error("server shutdown error", slog.String("error", err.Error()))
		}
		if err := rtm.ShutdownTrace(ctx); err != nil {
			observability.Logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}()

	if err := srv.Start(); err != nil {
		observability.Logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
	<-done
}
