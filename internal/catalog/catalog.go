package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

// maxTableSize bounds the eager nearest-rank table; sparser rank ranges fall
// back to the lazy map.
const maxTableSize = 1 << 16

// Specials reports which pal names can only be produced by override rules.
// *rules.Index satisfies it.
type Specials interface {
	IsSpecialChild(name string) bool
}

// Catalog is the rank-ordered set of pals. It is immutable after Load and safe
// for concurrent use.
type Catalog struct {
	pals   []models.Pal
	byName map[string]int

	// Lock-step with pals.
	ranks     []int
	isSpecial []bool
	// nonSpecialBelow[i] / nonSpecialAbove[i] is the nearest index strictly
	// below / above i that is not special, or -1.
	nonSpecialBelow []int
	nonSpecialAbove []int

	// Frozen nearest-rank table for keys in [tableBase, tableBase+len(table)).
	// Entries are pal indexes, -1 when nothing qualifies.
	tableBase int
	table     []int
	// reachable[i] is set when pals[i] is the nearest match of some rank in
	// [min rank, max rank], the only ranks the average formula can produce.
	reachable []bool
	// Keys outside the table, filled lazily with LoadOrStore.
	overflow sync.Map
}

// Load sorts pals by (rank, catalog number) and builds the nearest-rank index.
// specials may be nil when no override rules exist.
func Load(pals []models.Pal, specials Specials) (*Catalog, error) {
	c := &Catalog{
		pals:   slices.Clone(pals),
		byName: make(map[string]int, len(pals)),
	}
	seen := make(map[string]bool, len(pals))
	for _, p := range c.pals {
		if seen[p.Name] {
			return nil, &DuplicateNameError{Name: p.Name}
		}
		seen[p.Name] = true
	}

	slices.SortStableFunc(c.pals, func(a, b models.Pal) int {
		if r := cmp.Compare(a.Rank, b.Rank); r != 0 {
			return r
		}
		return cmp.Compare(a.CatalogOrder(), b.CatalogOrder())
	})

	n := len(c.pals)
	c.ranks = make([]int, n)
	c.isSpecial = make([]bool, n)
	for i, p := range c.pals {
		c.byName[p.Name] = i
		c.ranks[i] = p.Rank
		c.isSpecial[i] = specials != nil && specials.IsSpecialChild(p.Name)
	}

	c.nonSpecialBelow = make([]int, n)
	c.nonSpecialAbove = make([]int, n)
	last := -1
	for i := 0; i < n; i++ {
		c.nonSpecialBelow[i] = last
		if !c.isSpecial[i] {
			last = i
		}
	}
	next := -1
	for i := n - 1; i >= 0; i-- {
		c.nonSpecialAbove[i] = next
		if !c.isSpecial[i] {
			next = i
		}
	}

	c.buildTable()
	c.buildReachable()
	return c, nil
}

// buildReachable marks every pal that NearestByRank can return for a rank
// between the extremes. Between two neighbouring ranks the winner only
// changes at the neighbours themselves and around their midpoint, so those
// points cover every distinct answer.
func (c *Catalog) buildReachable() {
	n := len(c.ranks)
	c.reachable = make([]bool, n)
	if n == 0 {
		return
	}
	lo, hi := c.ranks[0], c.ranks[n-1]
	mark := func(rank int) {
		if rank < lo || rank > hi {
			return
		}
		if idx := c.cachedNearest(rank); idx >= 0 {
			c.reachable[idx] = true
		}
	}
	for i := 0; i < n; i++ {
		mark(c.ranks[i])
		mark(c.ranks[i] + 1)
		if i+1 < n {
			sum := c.ranks[i] + c.ranks[i+1]
			mark(floorHalf(sum))
			mark(floorHalf(sum + 1))
		}
	}
}

func floorHalf(x int) int {
	if x < 0 && x%2 != 0 {
		return x/2 - 1
	}
	return x / 2
}

// buildTable answers every key between the extreme ranks (plus one on each
// side) ahead of time. Computed ranks are averages of catalog ranks, so they
// always fall inside this range for pals from the catalog itself.
func (c *Catalog) buildTable() {
	if len(c.pals) == 0 {
		return
	}
	lo := c.ranks[0] - 1
	hi := c.ranks[len(c.ranks)-1] + 1
	if hi-lo+1 > maxTableSize {
		return
	}
	c.tableBase = lo
	c.table = make([]int, hi-lo+1)
	for k := range c.table {
		c.table[k] = c.nearestIndex(lo + k)
	}
}

func (c *Catalog) Len() int { return len(c.pals) }

// All returns the pals in catalog order. The slice is a copy.
func (c *Catalog) All() []models.Pal {
	return slices.Clone(c.pals)
}

// At returns the pal at position i in catalog order.
func (c *Catalog) At(i int) (models.Pal, error) {
	if i < 0 || i >= len(c.pals) {
		return models.Pal{}, fmt.Errorf("index %d: %w", i, ErrNotFound)
	}
	return c.pals[i], nil
}

func (c *Catalog) ByName(name string) (models.Pal, error) {
	i, ok := c.byName[name]
	if !ok {
		return models.Pal{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return c.pals[i], nil
}

// IndexOf returns the catalog position of name, or -1.
func (c *Catalog) IndexOf(name string) int {
	if i, ok := c.byName[name]; ok {
		return i
	}
	return -1
}

// IsSpecial reports whether the named pal is excluded from rank lookups.
func (c *Catalog) IsSpecial(name string) bool {
	i, ok := c.byName[name]
	return ok && c.isSpecial[i]
}

// RankReachable reports whether the named pal can be the result of the rank
// average formula for some pair of catalog pals.
func (c *Catalog) RankReachable(name string) bool {
	i, ok := c.byName[name]
	return ok && c.reachable[i]
}

// NearestByRank returns the non-special pal whose rank is closest to rank.
// Equidistant candidates are decided by higher priority, then lower rank.
func (c *Catalog) NearestByRank(rank int) (models.Pal, bool) {
	idx := c.cachedNearest(rank)
	if idx < 0 {
		return models.Pal{}, false
	}
	return c.pals[idx], true
}

func (c *Catalog) cachedNearest(rank int) int {
	if k := rank - c.tableBase; k >= 0 && k < len(c.table) {
		return c.table[k]
	}
	if v, ok := c.overflow.Load(rank); ok {
		return v.(int)
	}
	v, _ := c.overflow.LoadOrStore(rank, c.nearestIndex(rank))
	return v.(int)
}

func (c *Catalog) nearestIndex(rank int) int {
	n := len(c.ranks)
	if n == 0 {
		return -1
	}
	lo, _ := slices.BinarySearch(c.ranks, rank)

	left := -1
	if lo-1 >= 0 {
		left = lo - 1
		if c.isSpecial[left] {
			left = c.nonSpecialBelow[left]
		}
	}
	right := -1
	if lo < n {
		right = lo
		if c.isSpecial[right] {
			right = c.nonSpecialAbove[right]
		}
	}

	switch {
	case left < 0:
		return right
	case right < 0:
		return left
	}
	return c.better(left, right, rank)
}

func (c *Catalog) better(a, b, rank int) int {
	da, db := abs(c.ranks[a]-rank), abs(c.ranks[b]-rank)
	if da != db {
		if da < db {
			return a
		}
		return b
	}
	pa, pb := c.pals[a].Priority, c.pals[b].Priority
	if pa != pb {
		if pa > pb {
			return a
		}
		return b
	}
	if c.ranks[b] < c.ranks[a] {
		return b
	}
	return a
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
