package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/szzz666/PalEasyBreeding/internal/breeding"
	"github.com/szzz666/PalEasyBreeding/internal/catalog"
	"github.com/szzz666/PalEasyBreeding/internal/filter"
	"github.com/szzz666/PalEasyBreeding/internal/mcp"
	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

// ToolHandler is the interface that all tool handlers implement.
type ToolHandler[P any] interface {
	Handle(ctx context.Context, params P) (string, error)
}

// WrapHandler adapts a ToolHandler into the SDK's AddTool callback.
// It handles nil params by using a zero value and maps errors to CallToolResult.
func WrapHandler[P any](h ToolHandler[P]) func(context.Context, *sdkmcp.CallToolRequest, *P) (*sdkmcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, params *P) (*sdkmcp.CallToolResult, any, error) {
		if params == nil {
			params = new(P)
		}
		result, err := h.Handle(ctx, *params)
		if err != nil {
			return &sdkmcp.CallToolResult{
				IsError: true,
				Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: err.Error()}},
			}, nil, nil
		}
		return &sdkmcp.CallToolResult{
			Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: result}},
		}, nil, nil
	}
}

// Register adds every breeding tool to s.
func Register(s *sdkmcp.Server, srv *mcp.Server) {
	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "resolve_breeding",
		Description: "Breed two pals and return the child. Takes optional parent sexes for pairings whose child depends on them.",
	}, WrapHandler[ResolveBreedingParams](NewResolveBreedingHandler(srv.Breeding, srv.Logger)))

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "reverse_breeding",
		Description: "List every parent pair that breeds into a target pal. Supports excluding pals and requiring at least one selected pal.",
	}, WrapHandler[ReverseBreedingParams](NewReverseBreedingHandler(srv.Breeding, srv.Cache, srv.Logger)))

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "partial_breeding",
		Description: "With one parent already owned, list the partners that breed into a target pal, directly (steps=1) or through one intermediate child (steps=2).",
	}, WrapHandler[PartialBreedingParams](NewPartialBreedingHandler(srv.Breeding, srv.Cache, srv.Logger)))

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "search_pals",
		Description: "Find pals by display name, name or catalog number. Returns rank and whether the pal can only be bred through a special pairing.",
	}, WrapHandler[SearchPalsParams](NewSearchPalsHandler(srv.Breeding, srv.Logger)))
}

// WrapPalError translates catalog lookup errors into user-friendly messages.
func WrapPalError(name string, err error) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return fmt.Errorf("pal %q not found; use search_pals to look up names", name)
	}
	return fmt.Errorf("get pal %s: %w", name, err)
}

// lookupPal fetches a pal, rejecting empty names with the parameter name.
func lookupPal(svc *breeding.Service, param, name string) (models.Pal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Pal{}, fmt.Errorf("%s is required", param)
	}
	p, err := svc.ByName(name)
	if err != nil {
		return models.Pal{}, WrapPalError(name, err)
	}
	return p, nil
}

// listParams are the paging and filtering knobs shared by the search tools.
type listParams struct {
	exclude, sel      []string
	limit, offset     int
	verbosity         mcp.Verbosity
	maxResponseTokens int
}

// renderCombinations writes a page of combos under header.
func renderCombinations(header string, combos []models.Combination, p listParams) string {
	combos = filter.Criteria{Exclude: p.exclude, Select: p.sel}.Apply(combos)
	total := len(combos)
	if total == 0 {
		return header + "\n\nNo combinations found."
	}
	if p.limit <= 0 {
		p.limit = 50
	}
	if p.offset < 0 {
		p.offset = 0
	}
	if p.offset >= total {
		return fmt.Sprintf("%s (%d found)\n\nNo combinations at offset %d.", header, total, p.offset)
	}
	page := combos[p.offset:min(total, p.offset+p.limit)]

	rb := mcp.NewResponseBuilder(p.maxResponseTokens)
	rb.AddHeader(fmt.Sprintf("%s (%d found)", header, total))
	for i, c := range page {
		if !rb.AddCombination(p.offset+i+1, c, p.verbosity) {
			break
		}
	}
	return rb.Finalize(total, rb.ItemCount())
}

func parseSex(param, raw string) (models.Sex, error) {
	if strings.TrimSpace(raw) == "" {
		return models.SexAny, nil
	}
	s := models.ParseSex(raw)
	if s == models.SexAny {
		return s, fmt.Errorf("%s must be male or female", param)
	}
	return s, nil
}

// stepsOrDefault maps the zero value to a single step.
func stepsOrDefault(n int) int {
	if n == 0 {
		return 1
	}
	return n
}

var errSteps = fmt.Errorf("steps must be 1 or 2: %w", breeding.ErrUnsupportedSteps)
