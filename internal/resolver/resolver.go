package resolver

import (
	"errors"
	"fmt"

	"github.com/szzz666/PalEasyBreeding/internal/catalog"
	"github.com/szzz666/PalEasyBreeding/internal/rules"
	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

var ErrDataIntegrity = errors.New("breeding data integrity")

// DataIntegrityError reports an override rule whose child is not in the catalog.
type DataIntegrityError struct {
	Rule models.OverrideRule
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("%s: rule %s + %s produces unknown pal %q",
		ErrDataIntegrity, e.Rule.Parent1, e.Rule.Parent2, e.Rule.Child)
}

func (e *DataIntegrityError) Is(target error) bool { return target == ErrDataIntegrity }

type Kind string

const (
	KindNone          Kind = "none"
	KindSameSpecies   Kind = "same_species"
	KindUnconditional Kind = "unconditional"
	KindConditional   Kind = "conditional"
	KindComputed      Kind = "computed"
)

// Alternative is one possible child of a sex-specific pairing. Sexes are
// oriented to the parent order passed to Resolve.
type Alternative struct {
	Child      models.Pal `json:"child"`
	Parent1Sex models.Sex `json:"parent1_sex"`
	Parent2Sex models.Sex `json:"parent2_sex"`
}

// Outcome is the result of breeding two parents. Result is set for every kind
// except KindConditional (Alternatives) and KindNone.
type Outcome struct {
	Kind         Kind          `json:"kind"`
	Result       *models.Pal   `json:"result,omitempty"`
	Alternatives []Alternative `json:"alternatives,omitempty"`
	// ComputedRank is the averaged rank for KindComputed outcomes.
	ComputedRank int `json:"computed_rank,omitempty"`
}

// Children returns every pal the pairing can produce.
func (o Outcome) Children() []models.Pal {
	if o.Kind == KindConditional {
		out := make([]models.Pal, 0, len(o.Alternatives))
		for _, a := range o.Alternatives {
			out = append(out, a.Child)
		}
		return out
	}
	if o.Result != nil {
		return []models.Pal{*o.Result}
	}
	return nil
}

// Produces reports whether name is a possible child of the pairing.
func (o Outcome) Produces(name string) bool {
	for _, c := range o.Children() {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Pick returns the child for parents of the given sexes. For conditional
// outcomes the first alternative whose sexes match wins; SexAny matches
// anything.
func (o Outcome) Pick(sex1, sex2 models.Sex) (models.Pal, bool) {
	if o.Kind != KindConditional {
		if o.Result == nil {
			return models.Pal{}, false
		}
		return *o.Result, true
	}
	for _, a := range o.Alternatives {
		if a.Parent1Sex.Matches(sex1) && a.Parent2Sex.Matches(sex2) {
			return a.Child, true
		}
	}
	return models.Pal{}, false
}

// Resolver computes single-step breeding outcomes. It holds no mutable state.
type Resolver struct {
	catalog *catalog.Catalog
	rules   *rules.Index
}

func New(c *catalog.Catalog, idx *rules.Index) *Resolver {
	return &Resolver{catalog: c, rules: idx}
}

// Resolve breeds p1 with p2. Order: same species, override rules (conditional
// before unconditional), then the rank average.
func (r *Resolver) Resolve(p1, p2 models.Pal) (Outcome, error) {
	if p1.Name == p2.Name {
		res := p1
		return Outcome{Kind: KindSameSpecies, Result: &res}, nil
	}

	match := r.rules.Lookup(p1.Name, p2.Name)
	switch match.Kind {
	case rules.MatchConditional:
		alts := make([]Alternative, 0, len(match.Rules))
		for _, rule := range match.Rules {
			child, err := r.catalog.ByName(rule.Child)
			if err != nil {
				return Outcome{}, &DataIntegrityError{Rule: rule}
			}
			alts = append(alts, Alternative{
				Child:      child,
				Parent1Sex: rule.SexOf(p1.Name),
				Parent2Sex: rule.SexOf(p2.Name),
			})
		}
		return Outcome{Kind: KindConditional, Alternatives: alts}, nil
	case rules.MatchUnconditional:
		child, err := r.catalog.ByName(match.Child)
		if err != nil {
			return Outcome{}, &DataIntegrityError{Rule: models.OverrideRule{
				Parent1: p1.Name, Parent2: p2.Name, Child: match.Child,
			}}
		}
		return Outcome{Kind: KindUnconditional, Result: &child}, nil
	}

	return r.Computed(p1, p2), nil
}

// Computed applies the rank-average formula regardless of override rules.
func (r *Resolver) Computed(p1, p2 models.Pal) Outcome {
	rank := CombinedRank(p1.Rank, p2.Rank)
	child, ok := r.catalog.NearestByRank(rank)
	if !ok {
		return Outcome{Kind: KindNone, ComputedRank: rank}
	}
	return Outcome{Kind: KindComputed, Result: &child, ComputedRank: rank}
}

// CombinedRank is floor((a + b + 1) / 2).
func CombinedRank(a, b int) int {
	sum := a + b + 1
	q := sum / 2
	if sum%2 != 0 && sum < 0 {
		q--
	}
	return q
}
