package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/szzz666/PalEasyBreeding/internal/app"
	"github.com/szzz666/PalEasyBreeding/internal/config"
	"github.com/szzz666/PalEasyBreeding/internal/mcp"
	"github.com/szzz666/PalEasyBreeding/internal/mcp/tools"
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

	mcpServer := mcp.NewServer(mcp.ServerDeps{
		Breeding: svc,
		Cache:    resultCache,
		Logger:   logger,
	})

	// Tools are wired here to avoid an import cycle mcp <-> mcp/tools.
	sdkServer := sdkmcp.NewServer(&sdkmcp.Implementation{Name: mcp.ServerName, Version: mcp.ServerVersion}, nil)
	tools.Register(sdkServer, mcpServer)

	// Tools keep no session state.
	sdkHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return sdkServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)

	mux := http.NewServeMux()
	mux.Handle("/mcp", sdkHandler)
	mux.Handle("/", sdkHandler)

	httpServer := &http.Server{Addr: cfg.MCP.Addr, Handler: mux}

	go func() {
		logger.Info("MCP server listening", slog.String("addr", cfg.MCP.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP HTTP server error", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()
	logger.Info("MCP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("MCP HTTP shutdown", slog.String("error", err.Error()))
	}
	logger.Info("MCP server stopped")
}
