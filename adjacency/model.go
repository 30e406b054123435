package adjacency

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/tile"
)

// Model holds the compiled compatibility sets. It is immutable after Build.
type Model struct {
	nbhd     grid.Neighbourhood
	numTiles int
	policy   Unobserved
	keying   Keying

	compat   [][]*bitset.BitSet // [offset index][tile]
	observed [][]bool           // [offset index][tile]
}

// Build scans every example cell against every offset of the catalog's
// neighbourhood and records what sits there, keyed as opts select.
//
// Complexity: O(W×H×|N|).
func Build[T comparable](cat *tile.Catalog[T], opts ...Option) (*Model, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if cat == nil {
		return nil, ErrNilCatalog
	}

	n := cat.Neighbourhood()
	u := cat.Len()
	m := &Model{
		nbhd:     n,
		numTiles: u,
		policy:   o.Unobserved,
		keying:   o.Keying,
		compat:   make([][]*bitset.BitSet, len(n)),
		observed: make([][]bool, len(n)),
	}
	for k := range n {
		m.compat[k] = make([]*bitset.BitSet, u)
		m.observed[k] = make([]bool, u)
		for t := 0; t < u; t++ {
			m.compat[k][t] = bitset.New(uint(u))
		}
	}

	if m.keying == ByValue {
		observeValues(m, cat)
	} else {
		observeTiles(m, cat)
	}

	if m.policy == Permissive {
		for k := range n {
			for t := 0; t < u; t++ {
				if !m.observed[k][t] {
					m.compat[k][t].FlipRange(0, uint(u))
				}
			}
		}
	}

	return m, nil
}

// observeTiles records, per tile, the tiles found around its members.
func observeTiles[T comparable](m *Model, cat *tile.Catalog[T]) {
	for t := 0; t < m.numTiles; t++ {
		for _, cell := range cat.Members(tile.ID(t)) {
			for k, off := range m.nbhd {
				at, ok := cat.Resolve(cell, off)
				if !ok {
					continue
				}
				id, _ := cat.IDAt(at)
				m.compat[k][t].Set(uint(id))
				m.observed[k][t] = true
			}
		}
	}
}

// observeValues records, per example value, the values found around every
// cell holding it, then expands both sides to the tiles carrying them.
func observeValues[T comparable](m *Model, cat *tile.Catalog[T]) {
	ex := cat.Example()
	index := make(map[T]int)
	for _, v := range ex.All() {
		if _, ok := index[v]; !ok {
			index[v] = len(index)
		}
	}
	nv := len(index)

	// class[v]: tiles whose representative cell holds value v
	class := make([]*bitset.BitSet, nv)
	for v := range class {
		class[v] = bitset.New(uint(m.numTiles))
	}
	valueOf := make([]int, m.numTiles)
	for t := 0; t < m.numTiles; t++ {
		rep, _ := cat.Representative(tile.ID(t))
		v, _ := ex.Get(rep)
		valueOf[t] = index[v]
		class[valueOf[t]].Set(uint(t))
	}

	// seen[k][v]: values found at offset k from a cell holding v
	seen := make([][]*bitset.BitSet, len(m.nbhd))
	for k := range seen {
		seen[k] = make([]*bitset.BitSet, nv)
		for v := range seen[k] {
			seen[k][v] = bitset.New(uint(nv))
		}
	}
	for c, v := range ex.All() {
		a := index[v]
		for k, off := range m.nbhd {
			at, ok := cat.Resolve(c, off)
			if !ok {
				continue
			}
			w, _ := ex.Get(at)
			seen[k][a].Set(uint(index[w]))
		}
	}

	for k := range m.nbhd {
		for t := 0; t < m.numTiles; t++ {
			s := seen[k][valueOf[t]]
			if s.None() {
				continue
			}
			m.observed[k][t] = true
			for w, ok := s.NextSet(0); ok; w, ok = s.NextSet(w + 1) {
				m.compat[k][t].InPlaceUnion(class[w])
			}
		}
	}
}

// NumTiles returns the size of the tile universe.
func (m *Model) NumTiles() int { return m.numTiles }

// Neighbourhood returns a copy of the offsets the model was built for.
func (m *Model) Neighbourhood() grid.Neighbourhood {
	return append(grid.Neighbourhood(nil), m.nbhd...)
}

// Policy returns the Unobserved policy the model was built with.
func (m *Model) Policy() Unobserved { return m.policy }

// Keying returns what the model's observations are attached to.
func (m *Model) Keying() Keying { return m.keying }

// Compatible returns a copy of the set of tiles that may sit at offset o
// from a cell holding t.
func (m *Model) Compatible(o grid.Offset, t tile.ID) (*bitset.BitSet, error) {
	k, ok := m.nbhd.IndexOf(o)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOffset, o)
	}
	if t < 0 || int(t) >= m.numTiles {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTile, t)
	}

	return m.compat[k][t].Clone(), nil
}

// CompatibleAt is the index-based lookup used in the propagation loop.
// The returned set is shared and must not be mutated. The caller guarantees
// 0 <= k < len(Neighbourhood()) and 0 <= t < NumTiles().
func (m *Model) CompatibleAt(k int, t uint) *bitset.BitSet {
	return m.compat[k][t]
}

// Observed reports whether t (or, under ByValue, its value) was ever seen
// with a neighbour at offset index k.
func (m *Model) Observed(k int, t tile.ID) bool {
	if k < 0 || k >= len(m.nbhd) || t < 0 || int(t) >= m.numTiles {
		return false
	}

	return m.observed[k][t]
}

// Support stores in dst the union of the compatibility sets at offset index
// k over every tile in set, and returns dst.
// Complexity: O(|set|×U/64).
func (m *Model) Support(k int, set, dst *bitset.BitSet) *bitset.BitSet {
	dst.ClearAll()
	for t, ok := set.NextSet(0); ok; t, ok = set.NextSet(t + 1) {
		dst.InPlaceUnion(m.compat[k][t])
	}

	return dst
}

// Allows reports whether b may sit at offset o from a.
func (m *Model) Allows(o grid.Offset, a, b tile.ID) (bool, error) {
	k, ok := m.nbhd.IndexOf(o)
	if !ok {
		return false, fmt.Errorf("%w: %v", ErrInvalidOffset, o)
	}
	if a < 0 || int(a) >= m.numTiles {
		return false, fmt.Errorf("%w: %d", ErrUnknownTile, a)
	}
	if b < 0 || int(b) >= m.numTiles {
		return false, fmt.Errorf("%w: %d", ErrUnknownTile, b)
	}

	return m.compat[k][a].Test(uint(b)), nil
}

// Edges returns the total number of (offset, tile, tile) compatibilities.
func (m *Model) Edges() int {
	total := 0
	for k := range m.compat {
		for _, s := range m.compat[k] {
			total += int(s.Count())
		}
	}

	return total
}
