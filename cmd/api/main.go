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

	"github.com/joho/godotenv"

	"github.com/szzz666/PalEasyBreeding/internal/api"
	"github.com/szzz666/PalEasyBreeding/internal/app"
	"github.com/szzz666/PalEasyBreeding/internal/config"
)

func main() {
	_ = godotenv.Load(".env") // ignore error if .env missing

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := app.LoadService(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to load breeding data", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Valkey (optional, enables the result cache)
	resultCache, closeCache := app.OpenCache(ctx, cfg, logger)
	defer closeCache()

	router := api.NewRouter(logger, svc, &api.RouterDeps{Cache: resultCache})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting API server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
