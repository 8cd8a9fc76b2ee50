package handler

import (
	"net/http"

	"github.com/szzz666/PalEasyBreeding/internal/breeding"
	"github.com/szzz666/PalEasyBreeding/internal/cache"
	"github.com/szzz666/PalEasyBreeding/pkg/apierr"
)

type HealthHandler struct {
	svc   *breeding.Service
	cache *cache.Cache
}

// NewHealthHandler creates the probes. c may be nil.
func NewHealthHandler(svc *breeding.Service, c *cache.Cache) *HealthHandler {
	return &HealthHandler{svc: svc, cache: c}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports ready once a non-empty catalog is loaded. The result cache is
// optional and only reported.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil || h.svc.Len() == 0 {
		writeAPIError(w, nil, apierr.CatalogNotReady())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"pals":    h.svc.Len(),
		"version": h.svc.Version(),
		"cache":   h.cache.Status(r.Context()),
	})
}
