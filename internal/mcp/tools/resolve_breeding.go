package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/szzz666/PalEasyBreeding/internal/breeding"
	"github.com/szzz666/PalEasyBreeding/internal/mcp"
	"github.com/szzz666/PalEasyBreeding/internal/resolver"
)

// ResolveBreedingParams are the parameters for the resolve_breeding tool.
type ResolveBreedingParams struct {
	Parent1    string `json:"parent1"`
	Parent2    string `json:"parent2"`
	Parent1Sex string `json:"parent1_sex,omitempty"`
	Parent2Sex string `json:"parent2_sex,omitempty"`
}

// ResolveBreedingHandler implements the resolve_breeding MCP tool.
type ResolveBreedingHandler struct {
	svc    *breeding.Service
	logger *slog.Logger
}

// NewResolveBreedingHandler creates a new handler.
func NewResolveBreedingHandler(svc *breeding.Service, logger *slog.Logger) *ResolveBreedingHandler {
	return &ResolveBreedingHandler{svc: svc, logger: logger}
}

// Handle breeds the two parents.
func (h *ResolveBreedingHandler) Handle(ctx context.Context, params ResolveBreedingParams) (string, error) {
	p1, err := lookupPal(h.svc, "parent1", params.Parent1)
	if err != nil {
		return "", err
	}
	p2, err := lookupPal(h.svc, "parent2", params.Parent2)
	if err != nil {
		return "", err
	}
	sex1, err := parseSex("parent1_sex", params.Parent1Sex)
	if err != nil {
		return "", err
	}
	sex2, err := parseSex("parent2_sex", params.Parent2Sex)
	if err != nil {
		return "", err
	}

	outcome, err := h.svc.Resolve(p1.Name, p2.Name)
	if err != nil {
		return "", fmt.Errorf("resolve %s + %s: %w", p1.Name, p2.Name, err)
	}

	rb := mcp.NewResponseBuilder(0)
	rb.AddHeader(fmt.Sprintf("**%s + %s**", mcp.PalLabel(p1), mcp.PalLabel(p2)))

	switch outcome.Kind {
	case resolver.KindNone:
		rb.AddLine("No child: the catalog has no pal reachable by rank.")
	case resolver.KindConditional:
		rb.AddLine("The child depends on the parents' sexes:")
		for _, alt := range outcome.Alternatives {
			rb.AddLine(fmt.Sprintf("- %s %s + %s %s → **%s**",
				mcp.PalLabel(p1), alt.Parent1Sex, mcp.PalLabel(p2), alt.Parent2Sex, mcp.PalLabel(alt.Child)))
		}
		if sex1 != "" || sex2 != "" {
			if child, ok := outcome.Pick(sex1, sex2); ok {
				rb.AddLine(fmt.Sprintf("\nFor the requested sexes: **%s**", mcp.PalLabel(child)))
			} else {
				rb.AddLine("\nThe requested sexes produce none of these children.")
			}
		}
	default:
		rb.AddLine(fmt.Sprintf("Child: **%s** (%s)", mcp.PalLabel(*outcome.Result), describeKind(outcome)))
	}
	return rb.Finalize(0, 0), nil
}

func describeKind(o resolver.Outcome) string {
	switch o.Kind {
	case resolver.KindSameSpecies:
		return "same species"
	case resolver.KindUnconditional:
		return "special pairing"
	case resolver.KindComputed:
		return fmt.Sprintf("combined rank %d", o.ComputedRank)
	}
	return string(o.Kind)
}
