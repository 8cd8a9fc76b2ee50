// Package app wires the configured dataset source, breeding service and
// optional result cache shared by the commands.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/valkey-io/valkey-go"

	"github.com/szzz666/PalEasyBreeding/internal/breeding"
	"github.com/szzz666/PalEasyBreeding/internal/cache"
	"github.com/szzz666/PalEasyBreeding/internal/config"
	"github.com/szzz666/PalEasyBreeding/internal/dataset"
	vk "github.com/szzz666/PalEasyBreeding/internal/store/valkey"
)

// NewLogger returns the JSON logger every command writes to stdout.
func NewLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}))
}

// LoadService reads the configured dataset and builds the breeding service.
func LoadService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*breeding.Service, error) {
	src, err := dataset.NewSource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("dataset source: %w", err)
	}
	ds, err := dataset.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	logger.Info("dataset loaded",
		slog.String("source", src.String()),
		slog.String("id", ds.ID),
		slog.Int("pals", len(ds.Pals)),
		slog.Int("rules", len(ds.Rules)))

	return breeding.New(ds.Pals, ds.Rules, breeding.Options{Version: ds.ID, Logger: logger})
}

// OpenCache connects to Valkey when caching is enabled. An unreachable Valkey
// yields a cache without persistence. The returned close func is never nil.
func OpenCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*cache.Cache, func()) {
	if !cfg.Cache.Enabled {
		logger.Info("result cache disabled")
		return cache.New(nil, cfg.Cache.TTL, logger), func() {}
	}
	client, err := vk.NewClient(ctx, cfg.Valkey)
	if err != nil {
		logger.Warn("valkey unavailable, result cache disabled", slog.String("error", err.Error()))
		return cache.New(nil, cfg.Cache.TTL, logger), func() {}
	}
	logger.Info("connected to valkey", slog.String("addr", cfg.Valkey.Addr))
	return cache.New(client, cfg.Cache.TTL, logger), closer(client)
}

func closer(c valkey.Client) func() {
	return func() { c.Close() }
}
