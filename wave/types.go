package wave

import (
	"errors"
	"fmt"
)

// Sentinel errors for wave construction and mutation.
var (
	// ErrNoTiles indicates an empty tile universe for a non-empty output.
	ErrNoTiles = errors.New("wave: no tiles to place")

	// ErrCellIndex indicates a cell index outside the wave.
	ErrCellIndex = errors.New("wave: cell index out of range")

	// ErrTileIndex indicates a tile outside the universe.
	ErrTileIndex = errors.New("wave: tile out of range")
)

// Rand is the uniform source used for tie breaking. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	// IntN returns a uniform integer in [0, n). n > 0.
	IntN(n int) int
}

// Outcome reports the effect of a mutation on one cell.
type Outcome int

const (
	// Unchanged means the set did not shrink.
	Unchanged Outcome = iota

	// Changed means the set shrank and is still non-empty.
	Changed

	// Contradiction means the set is empty.
	Contradiction
)

// String returns a lower-case name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Changed:
		return "changed"
	case Contradiction:
		return "contradiction"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}
