package mcp

import (
	"log/slog"

	"github.com/szzz666/PalEasyBreeding/internal/breeding"
	"github.com/szzz666/PalEasyBreeding/internal/cache"
)

// ServerName and ServerVersion identify the tool server to clients.
const (
	ServerName    = "paleasy-breeding"
	ServerVersion = "1.0.0"
)

// ServerDeps holds the infrastructure shared by the MCP tools.
type ServerDeps struct {
	Breeding *breeding.Service
	// Cache may be nil.
	Cache  *cache.Cache
	Logger *slog.Logger
}

// Server carries the dependencies tool handlers are built from. Tools are
// registered from the tools package to avoid an import cycle.
type Server struct {
	Breeding *breeding.Service
	Cache    *cache.Cache
	Logger   *slog.Logger
}

// NewServer creates a new MCP server instance.
func NewServer(deps ServerDeps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{Breeding: deps.Breeding, Cache: deps.Cache, Logger: logger}
}
