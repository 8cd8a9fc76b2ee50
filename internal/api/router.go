package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	apihandler "github.com/szzz666/PalEasyBreeding/internal/api/handler"
	apimw "github.com/szzz666/PalEasyBreeding/internal/api/middleware"
	"github.com/szzz666/PalEasyBreeding/internal/breeding"
	"github.com/szzz666/PalEasyBreeding/internal/cache"
)

// RouterDeps holds optional dependencies for the router.
type RouterDeps struct {
	Cache *cache.Cache
}

func NewRouter(logger *slog.Logger, svc *breeding.Service, deps *RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apimw.Logger(logger))
	r.Use(apimw.CORS)
	r.Use(chimw.Recoverer)

	if deps == nil {
		deps = &RouterDeps{}
	}

	// Health checks
	health := apihandler.NewHealthHandler(svc, deps.Cache)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		pals := apihandler.NewPalHandler(logger, svc)
		r.Route("/pals", func(r chi.Router) {
			r.Get("/", pals.List)
			r.Get("/{name}", pals.Get)
		})

		breed := apihandler.NewBreedingHandler(logger, svc, deps.Cache)
		r.Get("/breed", breed.Breed)
		r.Get("/reverse/{target}", breed.Reverse)
		r.Get("/partial", breed.Partial)
	})

	return r
}
