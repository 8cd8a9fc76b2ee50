package filter

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

// SortByCatalogNumber returns a copy of pals ordered for listing: numbered
// pals first, then unnumbered labels, "#0" and "#-1".
func SortByCatalogNumber(pals []models.Pal) []models.Pal {
	out := slices.Clone(pals)
	slices.SortStableFunc(out, func(a, b models.Pal) int {
		return cmp.Compare(a.ListingOrder(), b.ListingOrder())
	})
	return out
}

type searchable struct {
	pal     models.Pal
	display string
	name    string
	number  string
}

// MatchPals returns the pals whose display name, name or catalog number
// contains term, case-insensitively. Display-name prefix matches come first,
// then name prefix matches, then catalog order. An empty term lists every pal
// in catalog-number order.
func MatchPals(pals []models.Pal, term string) []models.Pal {
	term = strings.TrimSpace(term)
	if term == "" {
		return SortByCatalogNumber(pals)
	}
	fold := cases.Fold()
	needle := fold.String(term)

	var hits []searchable
	for _, p := range pals {
		s := searchable{
			pal:     p,
			display: fold.String(p.DisplayName),
			name:    fold.String(p.Name),
			number:  fold.String(p.CatalogNumber),
		}
		if strings.Contains(s.display, needle) || strings.Contains(s.name, needle) || strings.Contains(s.number, needle) {
			hits = append(hits, s)
		}
	}

	slices.SortStableFunc(hits, func(a, b searchable) int {
		if r := preferPrefix(a.display, b.display, needle); r != 0 {
			return r
		}
		if r := preferPrefix(a.name, b.name, needle); r != 0 {
			return r
		}
		return cmp.Compare(a.pal.ListingOrder(), b.pal.ListingOrder())
	})

	out := make([]models.Pal, len(hits))
	for i, h := range hits {
		out[i] = h.pal
	}
	return out
}

func preferPrefix(a, b, needle string) int {
	pa, pb := strings.HasPrefix(a, needle), strings.HasPrefix(b, needle)
	switch {
	case pa && !pb:
		return -1
	case !pa && pb:
		return 1
	}
	return 0
}
