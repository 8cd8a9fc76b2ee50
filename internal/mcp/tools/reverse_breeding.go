package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/szzz666/PalEasyBreeding/internal/breeding"
	"github.com/szzz666/PalEasyBreeding/internal/cache"
	"github.com/szzz666/PalEasyBreeding/internal/mcp"
	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

// ReverseBreedingParams are the parameters for the reverse_breeding tool.
type ReverseBreedingParams struct {
	Target            string   `json:"target"`
	Exclude           []string `json:"exclude,omitempty"`
	Select            []string `json:"select,omitempty"`
	Limit             int      `json:"limit,omitempty"`
	Offset            int      `json:"offset,omitempty"`
	Verbosity         string   `json:"verbosity,omitempty"`
	MaxResponseTokens int      `json:"max_response_tokens,omitempty"`
}

// ReverseBreedingHandler implements the reverse_breeding MCP tool.
type ReverseBreedingHandler struct {
	svc    *breeding.Service
	cache  *cache.Cache
	logger *slog.Logger
}

// NewReverseBreedingHandler creates a new handler. c may be nil.
func NewReverseBreedingHandler(svc *breeding.Service, c *cache.Cache, logger *slog.Logger) *ReverseBreedingHandler {
	return &ReverseBreedingHandler{svc: svc, cache: c, logger: logger}
}

// Handle lists the parent pairs producing the target.
func (h *ReverseBreedingHandler) Handle(ctx context.Context, params ReverseBreedingParams) (string, error) {
	target, err := lookupPal(h.svc, "target", params.Target)
	if err != nil {
		return "", err
	}

	key := cache.Key(h.svc.Version(), "reverse", target.Name)
	combos, err := cache.Fetch(ctx, h.cache, key, func() ([]models.Combination, error) {
		return h.svc.Reverse(target.Name), nil
	})
	if err != nil {
		return "", fmt.Errorf("reverse %s: %w", target.Name, err)
	}

	header := fmt.Sprintf("**Parents of %s**", mcp.PalLabel(target))
	if h.svc.IsSpecial(target.Name) {
		header += " *(special: same species or special pairings only)*"
	}
	return renderCombinations(header, combos, listParams{
		exclude:           params.Exclude,
		sel:               params.Select,
		limit:             params.Limit,
		offset:            params.Offset,
		verbosity:         mcp.ParseVerbosity(params.Verbosity),
		maxResponseTokens: params.MaxResponseTokens,
	}), nil
}
