package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/szzz666/PalEasyBreeding/internal/app"
	"github.com/szzz666/PalEasyBreeding/internal/config"
	"github.com/szzz666/PalEasyBreeding/internal/dataset"
	minioclient "github.com/szzz666/PalEasyBreeding/internal/store/minio"
)

// The worker publishes datasets and precomputes reverse searches into Valkey.
func main() {
	seed := flag.String("seed", "", "publish this dataset file (or \"embedded\") to MinIO before warming")
	flag.Parse()

	_ = godotenv.Load(".env") // ignore error if .env missing

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *seed != "" {
		if err := publish(ctx, cfg, *seed, logger); err != nil {
			logger.Error("failed to publish dataset", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	svc, err := app.LoadService(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to load breeding data", slog.String("error", err.Error()))
		os.Exit(1)
	}

	resultCache, closeCache := app.OpenCache(ctx, cfg, logger)
	defer closeCache()
	if !resultCache.Enabled() {
		logger.Error("valkey is required to warm the result cache")
		os.Exit(1)
	}

	start := time.Now()
	n, err := app.Warm(ctx, svc, resultCache, cfg.Worker.Concurrency, logger)
	if err != nil {
		logger.Error("cache warm failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("cache warm complete",
		slog.Int("targets", n),
		slog.String("version", svc.Version()),
		slog.Duration("duration", time.Since(start)))
}

func publish(ctx context.Context, cfg *config.Config, path string, logger *slog.Logger) error {
	mc, err := minioclient.NewClient(cfg.MinIO)
	if err != nil {
		return err
	}
	if err := mc.EnsureBucket(ctx); err != nil {
		return err
	}

	var src dataset.Source = dataset.File{Path: path}
	if path == config.SourceEmbedded {
		src = dataset.Embedded{}
	}
	ds, err := dataset.Publish(ctx, src, mc, cfg.Dataset.Object)
	if err != nil {
		return err
	}
	logger.Info("dataset published",
		slog.String("bucket", mc.Bucket()),
		slog.String("object", cfg.Dataset.Object),
		slog.String("id", ds.ID))
	return nil
}
