package models

// Step is one breeding: two parents and the child they produce. Sexes are set
// only when a sex-specific override rule produced the child.
type Step struct {
	Parent1    Pal `json:"parent1"`
	Parent2    Pal `json:"parent2"`
	Child      Pal `json:"child"`
	Parent1Sex Sex `json:"parent1_sex,omitempty"`
	Parent2Sex Sex `json:"parent2_sex,omitempty"`
}

// Path chains two steps: Step1.Child is the intermediate bred with
// Step2.Parent2 into the final child.
type Path struct {
	Step1 Step `json:"step1"`
	Step2 Step `json:"step2"`
}

// Combination is one search result. Path is nil for single-step results.
type Combination struct {
	Step
	Path *Path `json:"path,omitempty"`
}

// MultiGeneration reports whether the combination is a two-step chain.
func (c Combination) MultiGeneration() bool {
	return c.Path != nil
}

// Pals returns every pal that appears in the combination, in display order,
// with repeats.
func (c Combination) Pals() []Pal {
	if c.Path != nil {
		s1, s2 := c.Path.Step1, c.Path.Step2
		return []Pal{s1.Parent1, s1.Parent2, s1.Child, s2.Parent1, s2.Parent2, s2.Child}
	}
	return []Pal{c.Parent1, c.Parent2, c.Child}
}
