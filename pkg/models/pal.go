package models

import (
	"strconv"
	"strings"
)

// UnindexedCatalogNumber is the sort weight given to catalog numbers that are
// not a positive "#N" label.
const UnindexedCatalogNumber = 999

type Sex string

const (
	SexAny    Sex = ""
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex accepts "male"/"female" (and their first letters) case-insensitively.
// Anything else is SexAny.
func ParseSex(s string) Sex {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return SexMale
	case "female", "f":
		return SexFemale
	default:
		return SexAny
	}
}

// Matches reports whether an actual sex satisfies a required one.
// SexAny on either side always matches.
func (s Sex) Matches(actual Sex) bool {
	return s == SexAny || actual == SexAny || s == actual
}

type Pal struct {
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	CatalogNumber string `json:"catalog_number"`
	Rank          int    `json:"rank"`
	Priority      int    `json:"priority"`
	ImageRef      string `json:"image_ref,omitempty"`
}

// CatalogOrder is the numeric weight of the pal's catalog number used to
// break rank ties. Sentinels ("#0", "#-1", "#B", "") weigh UnindexedCatalogNumber.
func (p Pal) CatalogOrder() int {
	n, ok := parseCatalogNumber(p.CatalogNumber)
	if !ok || n <= 0 {
		return UnindexedCatalogNumber
	}
	return n
}

// ListingOrder is the weight used when listing pals by catalog number. It keeps
// the three sentinel families apart: "#-1" last, "#0" before it, other
// non-numeric labels before both.
func (p Pal) ListingOrder() int {
	switch strings.TrimSpace(p.CatalogNumber) {
	case "#-1":
		return 999999
	case "#0":
		return 999998
	}
	n, ok := parseCatalogNumber(p.CatalogNumber)
	if !ok {
		return 999997
	}
	return n
}

func parseCatalogNumber(label string) (int, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(label), "#")
	// Variant labels such as "#12B" keep their numeric prefix.
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && s[end] == '-') {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// OverrideRule forces the child of an unordered parent pair. When SexSpecific
// is set the rule only applies when Parent1 has Parent1Sex and Parent2 has
// Parent2Sex.
type OverrideRule struct {
	Parent1     string `json:"parent1"`
	Parent2     string `json:"parent2"`
	Child       string `json:"child"`
	SexSpecific bool   `json:"sex_specific,omitempty"`
	Parent1Sex  Sex    `json:"parent1_sex,omitempty"`
	Parent2Sex  Sex    `json:"parent2_sex,omitempty"`
}

// Involves reports whether name is one of the rule's parents.
func (r OverrideRule) Involves(name string) bool {
	return r.Parent1 == name || r.Parent2 == name
}

// Partner returns the other parent when name is one side of the rule.
func (r OverrideRule) Partner(name string) (string, bool) {
	switch name {
	case r.Parent1:
		return r.Parent2, true
	case r.Parent2:
		return r.Parent1, true
	}
	return "", false
}

// SexOf returns the sex the rule requires of the named parent.
func (r OverrideRule) SexOf(name string) Sex {
	if !r.SexSpecific {
		return SexAny
	}
	if name == r.Parent1 {
		return r.Parent1Sex
	}
	if name == r.Parent2 {
		return r.Parent2Sex
	}
	return SexAny
}
