package breeding

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/szzz666/PalEasyBreeding/internal/catalog"
	"github.com/szzz666/PalEasyBreeding/internal/filter"
	"github.com/szzz666/PalEasyBreeding/internal/resolver"
	"github.com/szzz666/PalEasyBreeding/internal/rules"
	"github.com/szzz666/PalEasyBreeding/internal/search"
	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

var (
	ErrDataIntegrity    = resolver.ErrDataIntegrity
	ErrUnsupportedSteps = errors.New("unsupported number of breeding steps")
)

// Service is the query surface over one loaded dataset. It is immutable and
// safe for concurrent use.
type Service struct {
	catalog  *catalog.Catalog
	rules    *rules.Index
	resolver *resolver.Resolver
	search   *search.Engine
	version  string
}

// Options carries optional settings for New.
type Options struct {
	// Version identifies the dataset, e.g. for cache keys.
	Version string
	Logger  *slog.Logger
}

// New builds the rule index, catalog, resolver and search engine. It fails
// on duplicate pal names and on rules producing pals missing from the catalog.
func New(pals []models.Pal, overrides []models.OverrideRule, opts Options) (*Service, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	idx := rules.Build(overrides)
	cat, err := catalog.Load(pals, idx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var missingParents int
	for _, r := range idx.Rules() {
		if cat.IndexOf(r.Child) < 0 {
			return nil, &resolver.DataIntegrityError{Rule: r}
		}
		if cat.IndexOf(r.Parent1) < 0 || cat.IndexOf(r.Parent2) < 0 {
			missingParents++
		}
	}
	if missingParents > 0 {
		logger.Warn("override rules reference unknown parents",
			slog.Int("rules", missingParents))
	}

	res := resolver.New(cat, idx)
	s := &Service{
		catalog:  cat,
		rules:    idx,
		resolver: res,
		search:   search.NewEngine(cat, idx, res),
		version:  opts.Version,
	}

	logger.Info("breeding catalog loaded",
		slog.Int("pals", cat.Len()),
		slog.Int("rules", idx.Len()),
		slog.Int("special_pals", len(idx.Children())),
		slog.String("version", opts.Version))
	return s, nil
}

func (s *Service) Version() string { return s.version }

func (s *Service) Len() int { return s.catalog.Len() }

func (s *Service) ByName(name string) (models.Pal, error) {
	return s.catalog.ByName(name)
}

// All returns every pal in catalog (rank) order.
func (s *Service) All() []models.Pal {
	return s.catalog.All()
}

// Search finds pals by display name, name or catalog number.
func (s *Service) Search(term string) []models.Pal {
	return filter.MatchPals(s.catalog.All(), term)
}

func (s *Service) IsSpecial(name string) bool {
	return s.catalog.IsSpecial(name)
}

// Rules returns the override rules the service was built with.
func (s *Service) Rules() []models.OverrideRule {
	return s.rules.Rules()
}

// Resolve breeds two pals by name.
func (s *Service) Resolve(parent1, parent2 string) (resolver.Outcome, error) {
	p1, err := s.catalog.ByName(parent1)
	if err != nil {
		return resolver.Outcome{}, err
	}
	p2, err := s.catalog.ByName(parent2)
	if err != nil {
		return resolver.Outcome{}, err
	}
	return s.resolver.Resolve(p1, p2)
}

// Reverse lists every parent pair producing target. Unknown targets yield an
// empty result.
func (s *Service) Reverse(target string) []models.Combination {
	t, err := s.catalog.ByName(target)
	if err != nil {
		return []models.Combination{}
	}
	return nonNil(s.search.Reverse(t))
}

// PartialReverse lists combinations with one parent fixed. steps selects a
// direct search (1) or a chain through an intermediate pal (2).
func (s *Service) PartialReverse(known, target string, knownIsParent1 bool, steps int) ([]models.Combination, error) {
	if steps != 1 && steps != 2 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSteps, steps)
	}
	k, err := s.catalog.ByName(known)
	if err != nil {
		return []models.Combination{}, nil
	}
	t, err := s.catalog.ByName(target)
	if err != nil {
		return []models.Combination{}, nil
	}
	if steps == 1 {
		return nonNil(s.search.PartialReverse(k, t, knownIsParent1)), nil
	}
	return nonNil(s.search.PartialReverseTwoStep(k, t, knownIsParent1)), nil
}

func nonNil(c []models.Combination) []models.Combination {
	if c == nil {
		return []models.Combination{}
	}
	return c
}
