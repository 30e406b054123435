package materialize

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/tile"
)

// Sentinel errors for materialization.
var (
	// ErrNotConverged indicates that some cell does not hold exactly one tile.
	ErrNotConverged = errors.New("materialize: wave has not converged")

	// ErrNilInput indicates a nil catalog or wave.
	ErrNilInput = errors.New("materialize: catalog or wave is nil")

	// ErrTileMismatch indicates a wave tile outside the catalog.
	ErrTileMismatch = errors.New("materialize: wave tile not in catalog")
)

// View is the read side of a wave. Both *wave.Wave and *wave.Snapshot
// implement it.
type View interface {
	Width() int
	Height() int
	Len() int
	Entropy(i int) int
	TileAt(i int) (int, bool)
}

// CellState classifies one output cell.
type CellState int

const (
	// Resolved cells hold exactly one tile.
	Resolved CellState = iota

	// Unresolved cells still hold several tiles.
	Unresolved

	// Contradicted cells hold no tile.
	Contradicted
)

// String returns a lower-case name of the state.
func (s CellState) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case Unresolved:
		return "unresolved"
	case Contradicted:
		return "contradicted"
	default:
		return fmt.Sprintf("CellState(%d)", int(s))
	}
}

// Cell is the diagnostic record of one output cell. Value and Tile are
// meaningful only when State is Resolved; Tile is -1 otherwise.
type Cell[T any] struct {
	Value   T
	Tile    tile.ID
	State   CellState
	Entropy int
}

// Projection maps a tile (and its representative example cell) to an
// output value when the neighbourhood has no self offset.
type Projection[T comparable] func(t tile.Tile[T], representative grid.Coord) T

// Options configures Materialize and Diagnose.
type Options[T comparable] struct {
	// Projection overrides the representative-cell fallback.
	Projection Projection[T]
}

// Option mutates Options.
type Option[T comparable] func(*Options[T])

// WithProjection installs a projection. A nil projection is ignored.
func WithProjection[T comparable](p Projection[T]) Option[T] {
	return func(o *Options[T]) {
		if p != nil {
			o.Projection = p
		}
	}
}
