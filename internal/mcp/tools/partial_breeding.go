package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/szzz666/PalEasyBreeding/internal/breeding"
	"github.com/szzz666/PalEasyBreeding/internal/cache"
	"github.com/szzz666/PalEasyBreeding/internal/mcp"
	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

// PartialBreedingParams are the parameters for the partial_breeding tool.
type PartialBreedingParams struct {
	Known  string `json:"known"`
	Target string `json:"target"`
	// KnownIsParent1 defaults to true.
	KnownIsParent1    *bool    `json:"known_is_parent1,omitempty"`
	Steps             int      `json:"steps,omitempty"`
	Exclude           []string `json:"exclude,omitempty"`
	Select            []string `json:"select,omitempty"`
	Limit             int      `json:"limit,omitempty"`
	Offset            int      `json:"offset,omitempty"`
	Verbosity         string   `json:"verbosity,omitempty"`
	MaxResponseTokens int      `json:"max_response_tokens,omitempty"`
}

// PartialBreedingHandler implements the partial_breeding MCP tool.
type PartialBreedingHandler struct {
	svc    *breeding.Service
	cache  *cache.Cache
	logger *slog.Logger
}

// NewPartialBreedingHandler creates a new handler. c may be nil.
func NewPartialBreedingHandler(svc *breeding.Service, c *cache.Cache, logger *slog.Logger) *PartialBreedingHandler {
	return &PartialBreedingHandler{svc: svc, cache: c, logger: logger}
}

// Handle searches with one parent fixed.
func (h *PartialBreedingHandler) Handle(ctx context.Context, params PartialBreedingParams) (string, error) {
	steps := stepsOrDefault(params.Steps)
	if steps != 1 && steps != 2 {
		return "", errSteps
	}
	known, err := lookupPal(h.svc, "known", params.Known)
	if err != nil {
		return "", err
	}
	target, err := lookupPal(h.svc, "target", params.Target)
	if err != nil {
		return "", err
	}
	knownIsParent1 := true
	if params.KnownIsParent1 != nil {
		knownIsParent1 = *params.KnownIsParent1
	}

	key := cache.Key(h.svc.Version(), "partial",
		known.Name, target.Name, strconv.FormatBool(knownIsParent1), strconv.Itoa(steps))
	combos, err := cache.Fetch(ctx, h.cache, key, func() ([]models.Combination, error) {
		return h.svc.PartialReverse(known.Name, target.Name, knownIsParent1, steps)
	})
	if err != nil {
		return "", fmt.Errorf("partial search %s → %s: %w", known.Name, target.Name, err)
	}

	header := fmt.Sprintf("**%s → %s**", mcp.PalLabel(known), mcp.PalLabel(target))
	if steps == 2 {
		header += " in two generations"
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
