package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/szzz666/PalEasyBreeding/internal/breeding"
	"github.com/szzz666/PalEasyBreeding/internal/mcp"
)

// SearchPalsParams are the parameters for the search_pals tool.
type SearchPalsParams struct {
	Query             string `json:"query"`
	Limit             int    `json:"limit,omitempty"`
	Verbosity         string `json:"verbosity,omitempty"`
	MaxResponseTokens int    `json:"max_response_tokens,omitempty"`
}

// SearchPalsHandler implements the search_pals MCP tool.
type SearchPalsHandler struct {
	svc    *breeding.Service
	logger *slog.Logger
}

// NewSearchPalsHandler creates a new handler.
func NewSearchPalsHandler(svc *breeding.Service, logger *slog.Logger) *SearchPalsHandler {
	return &SearchPalsHandler{svc: svc, logger: logger}
}

// Handle finds pals matching the query. An empty query lists the catalog.
func (h *SearchPalsHandler) Handle(ctx context.Context, params SearchPalsParams) (string, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}

	pals := h.svc.Search(params.Query)
	if len(pals) == 0 {
		return fmt.Sprintf("No pals found matching '%s'.", params.Query), nil
	}

	verbosity := mcp.ParseVerbosity(params.Verbosity)
	rb := mcp.NewResponseBuilder(params.MaxResponseTokens)
	rb.AddHeader(fmt.Sprintf("**Pals** (%d found)", len(pals)))
	for i, p := range pals {
		if i >= params.Limit {
			break
		}
		if !rb.AddPalCard(p, h.svc.IsSpecial(p.Name), verbosity) {
			break
		}
	}
	return rb.Finalize(len(pals), rb.ItemCount()), nil
}
