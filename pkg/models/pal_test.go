package models

import "testing"

func TestCatalogOrder(t *testing.T) {
	tests := []struct {
		number string
		want   int
	}{
		{"#1", 1},
		{"#110", 110},
		{"#110B", 110},
		{" #7 ", 7},
		{"#0", UnindexedCatalogNumber},
		{"#-1", UnindexedCatalogNumber},
		{"#B", UnindexedCatalogNumber},
		{"", UnindexedCatalogNumber},
	}
	for _, tt := range tests {
		if got := (Pal{CatalogNumber: tt.number}).CatalogOrder(); got != tt.want {
			t.Errorf("CatalogOrder(%q) = %d, want %d", tt.number, got, tt.want)
		}
	}
}

func TestListingOrder(t *testing.T) {
	numbered := Pal{CatalogNumber: "#111"}.ListingOrder()
	label := Pal{CatalogNumber: "#B"}.ListingOrder()
	zero := Pal{CatalogNumber: "#0"}.ListingOrder()
	negative := Pal{CatalogNumber: "#-1"}.ListingOrder()
	if !(numbered < label && label < zero && zero < negative) {
		t.Errorf("order: numbered=%d label=%d zero=%d negative=%d", numbered, label, zero, negative)
	}
}

func TestParseSex(t *testing.T) {
	tests := map[string]Sex{
		"male":    SexMale,
		" Female": SexFemale,
		"M":       SexMale,
		"f":       SexFemale,
		"":        SexAny,
		"other":   SexAny,
	}
	for in, want := range tests {
		if got := ParseSex(in); got != want {
			t.Errorf("ParseSex(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSexMatches(t *testing.T) {
	tests := []struct {
		required, actual Sex
		want             bool
	}{
		{SexAny, SexMale, true},
		{SexFemale, SexAny, true},
		{SexMale, SexMale, true},
		{SexMale, SexFemale, false},
	}
	for _, tt := range tests {
		if got := tt.required.Matches(tt.actual); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v", tt.required, tt.actual, got)
		}
	}
}

func TestOverrideRuleHelpers(t *testing.T) {
	r := OverrideRule{Parent1: "Katress", Parent2: "Wixen", Child: "Wixen Noct", SexSpecific: true, Parent1Sex: SexMale, Parent2Sex: SexFemale}

	if !r.Involves("Wixen") || r.Involves("Wixen Noct") {
		t.Error("Involves should only match parents")
	}
	if p, ok := r.Partner("Wixen"); !ok || p != "Katress" {
		t.Errorf("Partner(Wixen) = %q, %v", p, ok)
	}
	if _, ok := r.Partner("Lamball"); ok {
		t.Error("Partner of a non-parent should fail")
	}
	if r.SexOf("Katress") != SexMale || r.SexOf("Wixen") != SexFemale || r.SexOf("Lamball") != SexAny {
		t.Error("SexOf returned the wrong sexes")
	}

	r.SexSpecific = false
	if r.SexOf("Katress") != SexAny {
		t.Error("unconditional rules require no sex")
	}
}

func TestCombinationPals(t *testing.T) {
	a, b, c := Pal{Name: "A"}, Pal{Name: "B"}, Pal{Name: "C"}
	single := Combination{Step: Step{Parent1: a, Parent2: b, Child: c}}
	if single.MultiGeneration() || len(single.Pals()) != 3 {
		t.Errorf("single step: %+v", single.Pals())
	}
	two := Combination{
		Step: Step{Parent1: a, Parent2: b, Child: c},
		Path: &Path{
			Step1: Step{Parent1: a, Parent2: b, Child: b},
			Step2: Step{Parent1: b, Parent2: a, Child: c},
		},
	}
	if !two.MultiGeneration() || len(two.Pals()) != 6 {
		t.Errorf("two steps: %+v", two.Pals())
	}
}
