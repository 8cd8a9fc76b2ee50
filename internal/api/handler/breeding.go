package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/szzz666/PalEasyBreeding/internal/breeding"
	"github.com/szzz666/PalEasyBreeding/internal/cache"
	"github.com/szzz666/PalEasyBreeding/internal/filter"
	"github.com/szzz666/PalEasyBreeding/internal/resolver"
	"github.com/szzz666/PalEasyBreeding/pkg/apierr"
	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

type BreedingHandler struct {
	logger *slog.Logger
	svc    *breeding.Service
	cache  *cache.Cache
}

// NewBreedingHandler creates the breeding endpoints. c may be nil.
func NewBreedingHandler(logger *slog.Logger, svc *breeding.Service, c *cache.Cache) *BreedingHandler {
	return &BreedingHandler{logger: logger, svc: svc, cache: c}
}

type breedResponse struct {
	Parent1 models.Pal       `json:"parent1"`
	Parent2 models.Pal       `json:"parent2"`
	Outcome resolver.Outcome `json:"outcome"`
	// Child is the pal produced for the requested sexes, if any.
	Child *models.Pal `json:"child,omitempty"`
}

type searchResponse struct {
	Target       string               `json:"target"`
	Known        string               `json:"known,omitempty"`
	Steps        int                  `json:"steps,omitempty"`
	Total        int                  `json:"total"`
	Combinations []models.Combination `json:"combinations"`
	// Pals lists every other pal appearing in the results.
	Pals []string `json:"pals"`
}

// Breed resolves the child of two parents.
// GET /breed?parent1=&parent2=[&parent1_sex=&parent2_sex=]
func (h *BreedingHandler) Breed(w http.ResponseWriter, r *http.Request) {
	name1, e := requiredQuery(r, "parent1")
	if e != nil {
		writeAPIError(w, h.logger, e)
		return
	}
	name2, e := requiredQuery(r, "parent2")
	if e != nil {
		writeAPIError(w, h.logger, e)
		return
	}
	sex1, e := sexQuery(r, "parent1_sex")
	if e != nil {
		writeAPIError(w, h.logger, e)
		return
	}
	sex2, e := sexQuery(r, "parent2_sex")
	if e != nil {
		writeAPIError(w, h.logger, e)
		return
	}

	p1, ok := getPalOr404(w, h.logger, h.svc, name1)
	if !ok {
		return
	}
	p2, ok := getPalOr404(w, h.logger, h.svc, name2)
	if !ok {
		return
	}

	outcome, err := h.svc.Resolve(p1.Name, p2.Name)
	if err != nil {
		writeAPIError(w, h.logger, apierr.Classify(err, nil))
		return
	}

	resp := breedResponse{Parent1: p1, Parent2: p2, Outcome: outcome}
	if child, ok := outcome.Pick(sex1, sex2); ok {
		resp.Child = &child
	}
	writeJSON(w, http.StatusOK, resp)
}

// Reverse lists every parent pair producing the target.
// GET /reverse/{target}?exclude=&select=
func (h *BreedingHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	target, ok := getPalOr404(w, h.logger, h.svc, pathName(r, "target"))
	if !ok {
		return
	}

	key := cache.Key(h.svc.Version(), "reverse", target.Name)
	combos, err := cache.Fetch(r.Context(), h.cache, key, func() ([]models.Combination, error) {
		return h.svc.Reverse(target.Name), nil
	})
	if err != nil {
		writeAPIError(w, h.logger, apierr.Classify(err, apierr.SearchFailed))
		return
	}

	h.writeResults(w, r, searchResponse{Target: target.Name}, combos)
}

// Partial lists combinations with one parent fixed, directly (steps=1) or
// through one intermediate pal (steps=2).
// GET /partial?known=&target=&known_is_parent1=&steps=&exclude=&select=
func (h *BreedingHandler) Partial(w http.ResponseWriter, r *http.Request) {
	knownName, e := requiredQuery(r, "known")
	if e != nil {
		writeAPIError(w, h.logger, e)
		return
	}
	targetName, e := requiredQuery(r, "target")
	if e != nil {
		writeAPIError(w, h.logger, e)
		return
	}
	knownIsParent1, e := boolQuery(r, "known_is_parent1", true)
	if e != nil {
		writeAPIError(w, h.logger, e)
		return
	}
	steps := 1
	if raw := r.URL.Query().Get("steps"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || (n != 1 && n != 2) {
			writeAPIError(w, h.logger, apierr.InvalidSteps())
			return
		}
		steps = n
	}

	known, ok := getPalOr404(w, h.logger, h.svc, knownName)
	if !ok {
		return
	}
	target, ok := getPalOr404(w, h.logger, h.svc, targetName)
	if !ok {
		return
	}

	key := cache.Key(h.svc.Version(), "partial",
		known.Name, target.Name, strconv.FormatBool(knownIsParent1), strconv.Itoa(steps))
	combos, err := cache.Fetch(r.Context(), h.cache, key, func() ([]models.Combination, error) {
		return h.svc.PartialReverse(known.Name, target.Name, knownIsParent1, steps)
	})
	if err != nil {
		writeAPIError(w, h.logger, apierr.Classify(err, apierr.SearchFailed))
		return
	}

	h.writeResults(w, r, searchResponse{Target: target.Name, Known: known.Name, Steps: steps}, combos)
}

// writeResults applies ?exclude= and ?select= to combos and writes resp.
func (h *BreedingHandler) writeResults(w http.ResponseWriter, r *http.Request, resp searchResponse, combos []models.Combination) {
	crit := filter.Criteria{
		Exclude: parseCSV(r.URL.Query().Get("exclude")),
		Select:  parseCSV(r.URL.Query().Get("select")),
	}
	combos = crit.Apply(combos)

	resp.Total = len(combos)
	resp.Combinations = combos
	resp.Pals = filter.Names(combos, resp.Target, resp.Known)
	if resp.Pals == nil {
		resp.Pals = []string{}
	}
	writeJSON(w, http.StatusOK, resp)
}
