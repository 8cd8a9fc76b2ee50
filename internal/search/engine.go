package search

import (
	"github.com/szzz666/PalEasyBreeding/internal/catalog"
	"github.com/szzz666/PalEasyBreeding/internal/resolver"
	"github.com/szzz666/PalEasyBreeding/internal/rules"
	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

// Engine enumerates parent combinations that breed into a target. Searches
// are exhaustive over the catalog and never truncate their results.
type Engine struct {
	catalog  *catalog.Catalog
	rules    *rules.Index
	resolver *resolver.Resolver
}

func NewEngine(c *catalog.Catalog, idx *rules.Index, r *resolver.Resolver) *Engine {
	return &Engine{catalog: c, rules: idx, resolver: r}
}

// pairSet tracks unordered parent pairs already present in a result.
type pairSet map[rules.PairKey]bool

func (s pairSet) add(a, b string) bool {
	k := rules.NewPairKey(a, b)
	if s[k] {
		return false
	}
	s[k] = true
	return true
}

func (s pairSet) has(a, b string) bool {
	return s[rules.NewPairKey(a, b)]
}

// Reverse returns every unordered parent pair producing target: the
// same-species pair, override rules, and rank-average pairs.
//
// The rank-average scan is skipped only when target wins no rank at all. Being
// the nearest pal at its own rank is not required, since an averaged rank
// between two neighbours can still land on it.
func (e *Engine) Reverse(target models.Pal) []models.Combination {
	seen := pairSet{}
	out := []models.Combination{single(target, target, target)}
	seen.add(target.Name, target.Name)

	for _, rule := range e.rules.ChildrenOf(target.Name) {
		p1, err1 := e.catalog.ByName(rule.Parent1)
		p2, err2 := e.catalog.ByName(rule.Parent2)
		if err1 != nil || err2 != nil || !e.ruleApplies(rule) {
			continue
		}
		if !seen.add(p1.Name, p2.Name) {
			continue
		}
		out = append(out, fromRule(p1, p2, target, rule))
	}

	if !e.reachableByRank(target) {
		return out
	}

	pals := e.catalog.All()
	for i := range pals {
		for j := i; j < len(pals); j++ {
			p1, p2 := pals[i], pals[j]
			if p1.Name == p2.Name || seen.has(p1.Name, p2.Name) {
				continue
			}
			// A pair with an override can only ever produce the override child,
			// and matching overrides were collected above.
			if e.rules.Lookup(p1.Name, p2.Name).Kind != rules.MatchNone {
				continue
			}
			if o := e.resolver.Computed(p1, p2); o.Result != nil && o.Result.Name == target.Name {
				seen.add(p1.Name, p2.Name)
				out = append(out, single(p1, p2, target))
			}
		}
	}
	return out
}

// PartialReverse returns every partner that breeds with known into target.
// knownIsParent1 decides which side known occupies in the output.
func (e *Engine) PartialReverse(known, target models.Pal, knownIsParent1 bool) []models.Combination {
	seen := pairSet{}
	var out []models.Combination
	orient := func(other models.Pal) (models.Pal, models.Pal) {
		if knownIsParent1 {
			return known, other
		}
		return other, known
	}

	if known.Name == target.Name {
		seen.add(known.Name, known.Name)
		out = append(out, single(target, target, target))
	}

	for _, rule := range e.rules.ChildrenOf(target.Name) {
		partnerName, ok := rule.Partner(known.Name)
		if !ok || !e.ruleApplies(rule) {
			continue
		}
		partner, err := e.catalog.ByName(partnerName)
		if err != nil {
			continue
		}
		if !seen.add(known.Name, partner.Name) {
			continue
		}
		p1, p2 := orient(partner)
		out = append(out, fromRule(p1, p2, target, rule))
	}

	if !e.reachableByRank(target) {
		return out
	}

	for _, candidate := range e.catalog.All() {
		if candidate.Name == known.Name || seen.has(known.Name, candidate.Name) {
			continue
		}
		if e.rules.Lookup(known.Name, candidate.Name).Kind != rules.MatchNone {
			continue
		}
		if o := e.resolver.Computed(known, candidate); o.Result != nil && o.Result.Name == target.Name {
			seen.add(known.Name, candidate.Name)
			p1, p2 := orient(candidate)
			out = append(out, single(p1, p2, target))
		}
	}
	return out
}

// ruleApplies reports whether rule decides the outcome of its own pair. A
// self-pair always breeds true, and conditional rules shadow an unconditional
// one on the same pair.
func (e *Engine) ruleApplies(rule models.OverrideRule) bool {
	if rule.Parent1 == rule.Parent2 {
		return false
	}
	m := e.rules.Lookup(rule.Parent1, rule.Parent2)
	if rule.SexSpecific {
		return m.Kind == rules.MatchConditional
	}
	return m.Kind == rules.MatchUnconditional && m.Child == rule.Child
}

// reachableByRank reports whether any non-override pair can land on target.
// The average formula only ever yields the nearest pal of some rank. A pal
// that is its own nearest match qualifies directly; otherwise it still may be
// the winning neighbour of a different rank, which the catalog precomputes.
func (e *Engine) reachableByRank(target models.Pal) bool {
	if e.catalog.IsSpecial(target.Name) {
		return false
	}
	if nearest, ok := e.catalog.NearestByRank(target.Rank); ok && nearest.Name == target.Name {
		return true
	}
	return e.catalog.RankReachable(target.Name)
}

func single(p1, p2, child models.Pal) models.Combination {
	return models.Combination{Step: models.Step{Parent1: p1, Parent2: p2, Child: child}}
}

func fromRule(p1, p2, child models.Pal, rule models.OverrideRule) models.Combination {
	c := single(p1, p2, child)
	if rule.SexSpecific {
		c.Parent1Sex = rule.SexOf(p1.Name)
		c.Parent2Sex = rule.SexOf(p2.Name)
	}
	return c
}
