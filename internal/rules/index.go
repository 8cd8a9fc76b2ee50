package rules

import (
	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

// PairKey identifies an unordered pair of pal names. A is always the
// lexicographically smaller name.
type PairKey struct {
	A string
	B string
}

// NewPairKey normalizes the pair so that NewPairKey(x, y) == NewPairKey(y, x).
func NewPairKey(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchUnconditional
	MatchConditional
)

func (k MatchKind) String() string {
	switch k {
	case MatchUnconditional:
		return "unconditional"
	case MatchConditional:
		return "conditional"
	default:
		return "none"
	}
}

// Match is the override behavior of a pair. Child is set for unconditional
// matches, Rules for conditional ones.
type Match struct {
	Kind  MatchKind
	Child string
	Rules []models.OverrideRule
}

// Index answers override lookups for unordered name pairs in O(1).
// It is immutable after Build.
type Index struct {
	rules         []models.OverrideRule
	unconditional map[PairKey]string
	conditional   map[PairKey][]models.OverrideRule
	byChild       map[string][]models.OverrideRule
}

// Build partitions rules by pair. A later unconditional rule for the same pair
// replaces an earlier one; conditional rules accumulate in source order.
func Build(rules []models.OverrideRule) *Index {
	idx := &Index{
		rules:         make([]models.OverrideRule, len(rules)),
		unconditional: make(map[PairKey]string),
		conditional:   make(map[PairKey][]models.OverrideRule),
		byChild:       make(map[string][]models.OverrideRule),
	}
	copy(idx.rules, rules)

	for _, r := range idx.rules {
		key := NewPairKey(r.Parent1, r.Parent2)
		if r.SexSpecific {
			idx.conditional[key] = append(idx.conditional[key], r)
		} else {
			idx.unconditional[key] = r.Child
		}
		idx.byChild[r.Child] = append(idx.byChild[r.Child], r)
	}
	return idx
}

// Lookup returns the override for a pair. Conditional rules shadow an
// unconditional entry for the same pair.
func (x *Index) Lookup(a, b string) Match {
	if x == nil {
		return Match{}
	}
	key := NewPairKey(a, b)
	if rs := x.conditional[key]; len(rs) > 0 {
		return Match{Kind: MatchConditional, Rules: rs}
	}
	if child, ok := x.unconditional[key]; ok {
		return Match{Kind: MatchUnconditional, Child: child}
	}
	return Match{}
}

// ChildrenOf returns every rule producing target, in source order.
func (x *Index) ChildrenOf(target string) []models.OverrideRule {
	if x == nil {
		return nil
	}
	return x.byChild[target]
}

// IsSpecialChild reports whether name is the child of any rule.
func (x *Index) IsSpecialChild(name string) bool {
	if x == nil {
		return false
	}
	_, ok := x.byChild[name]
	return ok
}

// Children returns the distinct child names across all rules.
func (x *Index) Children() []string {
	if x == nil {
		return nil
	}
	out := make([]string, 0, len(x.byChild))
	seen := make(map[string]bool, len(x.byChild))
	for _, r := range x.rules {
		if !seen[r.Child] {
			seen[r.Child] = true
			out = append(out, r.Child)
		}
	}
	return out
}

func (x *Index) Rules() []models.OverrideRule {
	if x == nil {
		return nil
	}
	out := make([]models.OverrideRule, len(x.rules))
	copy(out, x.rules)
	return out
}

func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.rules)
}
