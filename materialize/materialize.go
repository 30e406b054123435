package materialize

import (
	"fmt"

	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/tile"
)

// Report is the per-cell diagnosis of a wave.
type Report[T comparable] struct {
	Cells *grid.Grid[Cell[T]]

	unresolved   []grid.Coord
	contradicted []grid.Coord
}

// Unresolved returns the cells still holding several tiles, row-major.
func (r *Report[T]) Unresolved() []grid.Coord { return append([]grid.Coord(nil), r.unresolved...) }

// Contradicted returns the cells holding no tile, row-major.
func (r *Report[T]) Contradicted() []grid.Coord {
	return append([]grid.Coord(nil), r.contradicted...)
}

// Complete reports whether every cell is resolved.
func (r *Report[T]) Complete() bool { return len(r.unresolved) == 0 && len(r.contradicted) == 0 }

// Values returns the output grid when the report is complete.
func (r *Report[T]) Values() (*grid.Grid[T], error) {
	if !r.Complete() {
		return nil, fmt.Errorf("%w: %d unresolved, %d contradicted",
			ErrNotConverged, len(r.unresolved), len(r.contradicted))
	}

	return grid.Map(r.Cells, func(_ grid.Coord, c Cell[T]) T { return c.Value }), nil
}

// Diagnose classifies every cell of v and resolves the values of collapsed
// cells through cat.
// Complexity: O(W×H) plus the projection cost.
func Diagnose[T comparable](cat *tile.Catalog[T], v View, opts ...Option[T]) (*Report[T], error) {
	if cat == nil || v == nil {
		return nil, ErrNilInput
	}
	var o Options[T]
	for _, opt := range opts {
		opt(&o)
	}

	cells, err := grid.New[Cell[T]](v.Width(), v.Height())
	if err != nil {
		return nil, err
	}
	r := &Report[T]{Cells: cells}
	for i := 0; i < v.Len(); i++ {
		at, _ := cells.To2D(i)
		c := Cell[T]{Tile: -1, Entropy: v.Entropy(i)}
		switch {
		case c.Entropy == 0:
			c.State = Contradicted
			r.contradicted = append(r.contradicted, at)
		case c.Entropy > 1:
			c.State = Unresolved
			r.unresolved = append(r.unresolved, at)
		default:
			t, _ := v.TileAt(i)
			val, ok := value(cat, tile.ID(t), o.Projection)
			if !ok {
				return nil, fmt.Errorf("%w: tile %d at %v", ErrTileMismatch, t, at)
			}
			c.State, c.Tile, c.Value = Resolved, tile.ID(t), val
		}
		cells.SetAt(i, c)
	}

	return r, nil
}

// Materialize returns the output grid of a converged wave.
func Materialize[T comparable](cat *tile.Catalog[T], v View, opts ...Option[T]) (*grid.Grid[T], error) {
	r, err := Diagnose(cat, v, opts...)
	if err != nil {
		return nil, err
	}

	return r.Values()
}

func value[T comparable](cat *tile.Catalog[T], id tile.ID, proj Projection[T]) (v T, ok bool) {
	if v, ok = cat.SelfValue(id); ok {
		return v, true
	}
	rep, ok := cat.Representative(id)
	if !ok {
		return v, false
	}
	if proj != nil {
		t, _ := cat.Tile(id)
		return proj(t, rep), true
	}

	return cat.Example().Get(rep)
}
