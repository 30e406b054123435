package regions

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tilewave/grid"
)

// Sentinel errors for region analysis.
var (
	// ErrEmptyGrid indicates the grid has no cells.
	ErrEmptyGrid = errors.New("regions: grid must have at least one cell")
	// ErrNilPredicate indicates a missing keep predicate.
	ErrNilPredicate = errors.New("regions: keep predicate is nil")
	// ErrComponentIndex indicates a requested component index is out of range.
	ErrComponentIndex = errors.New("regions: component index out of range")
	// ErrNoPath indicates no conversion path exists between two components.
	ErrNoPath = errors.New("regions: no path between specified components")
	// ErrFillNotKept indicates a Connect fill value the predicate rejects.
	ErrFillNotKept = errors.New("regions: fill value is not kept")
	// ErrAsymmetric indicates a neighbourhood lacking the reverse of some offset.
	ErrAsymmetric = errors.New("regions: neighbourhood is not symmetric")
)

// Map is a read-only connectivity view over a grid. The grid must not be
// mutated while the Map is in use.
type Map[T comparable] struct {
	g       *grid.Grid[T]
	keep    func(T) bool
	offsets []grid.Offset // neighbourhood without the zero offset
}

// New builds a Map. Zero offsets in n are ignored.
// Returns ErrEmptyGrid, ErrNilPredicate or the neighbourhood validation error.
func New[T comparable](g *grid.Grid[T], n grid.Neighbourhood, keep func(T) bool) (*Map[T], error) {
	if g == nil || g.Len() == 0 {
		return nil, ErrEmptyGrid
	}
	if keep == nil {
		return nil, ErrNilPredicate
	}
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("regions: %w", err)
	}
	offsets := make([]grid.Offset, 0, len(n))
	for _, o := range n {
		if !o.IsZero() {
			offsets = append(offsets, o)
		}
	}

	return &Map[T]{g: g, keep: keep, offsets: offsets}, nil
}

// Kept returns a predicate accepting any of the given symbols.
func Kept[T comparable](symbols ...T) func(T) bool {
	set := make(map[T]struct{}, len(symbols))
	for _, s := range symbols {
		set[s] = struct{}{}
	}

	return func(v T) bool {
		_, ok := set[v]
		return ok
	}
}

// kept reports whether flat index i holds a kept value.
func (m *Map[T]) kept(i int) bool { return m.keep(m.g.At(i)) }

// Coordinate converts a row-major index back to (x,y).
func (m *Map[T]) Coordinate(idx int) (grid.Coord, bool) { return m.g.To2D(idx) }
