package filter

import (
	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

// Criteria narrows a result list by pal membership. Exclude drops every
// combination that mentions an excluded pal anywhere in its path; Select then
// keeps only combinations mentioning at least one selected pal.
type Criteria struct {
	Exclude []string
	Select  []string
}

func (c Criteria) Empty() bool {
	return len(c.Exclude) == 0 && len(c.Select) == 0
}

// Apply returns the combinations that pass the criteria, preserving order.
func (c Criteria) Apply(combos []models.Combination) []models.Combination {
	if c.Empty() {
		return combos
	}
	exclude := toSet(c.Exclude)
	sel := toSet(c.Select)

	out := make([]models.Combination, 0, len(combos))
	for _, combo := range combos {
		if mentionsAny(combo, exclude) {
			continue
		}
		if len(sel) > 0 && !mentionsAny(combo, sel) {
			continue
		}
		out = append(out, combo)
	}
	return out
}

// Names lists the distinct pal names appearing in combos, in order of first
// appearance, leaving out the names in omit (typically the query's own pals).
func Names(combos []models.Combination, omit ...string) []string {
	skip := toSet(omit)
	seen := make(map[string]bool)
	var out []string
	for _, combo := range combos {
		for _, p := range combo.Pals() {
			if seen[p.Name] || skip[p.Name] {
				continue
			}
			seen[p.Name] = true
			out = append(out, p.Name)
		}
	}
	return out
}

func mentionsAny(combo models.Combination, names map[string]bool) bool {
	for _, p := range combo.Pals() {
		if names[p.Name] {
			return true
		}
	}
	return false
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if n != "" {
			set[n] = true
		}
	}
	return set
}
