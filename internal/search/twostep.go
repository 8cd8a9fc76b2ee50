package search

import (
	"github.com/szzz666/PalEasyBreeding/internal/resolver"
	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

// chainKey identifies a two-step chain by every pal that plays a role in it.
type chainKey struct {
	known, first, intermediate, second string
}

// partner is one pal bred with a fixed parent, with the sexes a sex-specific
// rule demands (empty otherwise).
type partner struct {
	pal        models.Pal
	fixedSex   models.Sex
	partnerSex models.Sex
}

// PartialReverseTwoStep returns every chain known ⊕ X → I, I ⊕ Y → target.
// X and Y range over the whole catalog, known and special pals included.
// Conditional pairings count once for each possible child.
//
// Results are ordered by intermediate (catalog order), then X, then Y.
func (e *Engine) PartialReverseTwoStep(known, target models.Pal, knownIsParent1 bool) []models.Combination {
	pals := e.catalog.All()

	// First step: which partners of known lead to each intermediate.
	firstStep := make(map[string][]partner)
	for _, x := range pals {
		o, err := e.resolver.Resolve(known, x)
		if err != nil {
			continue
		}
		for _, alt := range alternatives(o) {
			firstStep[alt.Child.Name] = append(firstStep[alt.Child.Name], partner{
				pal: x, fixedSex: alt.Parent1Sex, partnerSex: alt.Parent2Sex,
			})
		}
	}

	seen := make(map[chainKey]bool)
	var out []models.Combination
	for _, mid := range pals {
		xs := firstStep[mid.Name]
		if len(xs) == 0 {
			continue
		}
		ys := e.partnersFor(mid, target, pals)
		if len(ys) == 0 {
			continue
		}
		for _, x := range xs {
			for _, y := range ys {
				key := chainKey{known: known.Name, first: x.pal.Name, intermediate: mid.Name, second: y.pal.Name}
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, chain(known, x, mid, y, target, knownIsParent1))
			}
		}
	}
	return out
}

// partnersFor lists every Y such that mid ⊕ Y can produce target.
func (e *Engine) partnersFor(mid, target models.Pal, pals []models.Pal) []partner {
	var out []partner
	for _, y := range pals {
		o, err := e.resolver.Resolve(mid, y)
		if err != nil {
			continue
		}
		for _, alt := range alternatives(o) {
			if alt.Child.Name == target.Name {
				out = append(out, partner{pal: y, fixedSex: alt.Parent1Sex, partnerSex: alt.Parent2Sex})
			}
		}
	}
	return out
}

// alternatives flattens an outcome into its possible children.
func alternatives(o resolver.Outcome) []resolver.Alternative {
	if o.Kind == resolver.KindConditional {
		return o.Alternatives
	}
	if o.Result == nil {
		return nil
	}
	return []resolver.Alternative{{Child: *o.Result}}
}

func chain(known models.Pal, x partner, mid models.Pal, y partner, target models.Pal, knownIsParent1 bool) models.Combination {
	c := models.Combination{
		Step: models.Step{Parent1: known, Parent2: x.pal, Child: target},
		Path: &models.Path{
			Step1: models.Step{
				Parent1: known, Parent2: x.pal, Child: mid,
				Parent1Sex: x.fixedSex, Parent2Sex: x.partnerSex,
			},
			Step2: models.Step{
				Parent1: mid, Parent2: y.pal, Child: target,
				Parent1Sex: y.fixedSex, Parent2Sex: y.partnerSex,
			},
		},
	}
	if !knownIsParent1 {
		c.Parent1, c.Parent2 = x.pal, known
	}
	return c
}
