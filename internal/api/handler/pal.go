package handler

import (
	"log/slog"
	"net/http"

	"github.com/szzz666/PalEasyBreeding/internal/breeding"
	"github.com/szzz666/PalEasyBreeding/pkg/apierr"
	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

type PalHandler struct {
	logger *slog.Logger
	svc    *breeding.Service
}

func NewPalHandler(logger *slog.Logger, svc *breeding.Service) *PalHandler {
	return &PalHandler{logger: logger, svc: svc}
}

// List returns pals matching ?q= (all pals when empty) in listing order.
// GET /pals
func (h *PalHandler) List(w http.ResponseWriter, r *http.Request) {
	pals := h.svc.Search(r.URL.Query().Get("q"))
	total := len(pals)
	limit := intQuery(r, "limit", 500, 1000)
	if len(pals) > limit {
		pals = pals[:limit]
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pals":  pals,
		"total": total,
	})
}

// Get returns one pal and whether it can only be bred through an override rule.
// GET /pals/{name}
func (h *PalHandler) Get(w http.ResponseWriter, r *http.Request) {
	pal, ok := getPalOr404(w, h.logger, h.svc, pathName(r, "name"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pal":     pal,
		"special": h.svc.IsSpecial(pal.Name),
	})
}

// getPalOr404 fetches a pal by name and writes a 404/500 error on failure.
func getPalOr404(w http.ResponseWriter, logger *slog.Logger, svc *breeding.Service, name string) (models.Pal, bool) {
	pal, err := svc.ByName(name)
	if err != nil {
		if apierr.IsNotFound(err) {
			writeAPIError(w, logger, apierr.PalNotFound(name))
		} else {
			writeAPIError(w, logger, apierr.InternalError(err))
		}
		return models.Pal{}, false
	}
	return pal, true
}
