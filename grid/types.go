package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid construction and neighbourhood validation.
var (
	// ErrInvalidSize indicates a negative width or height.
	ErrInvalidSize = errors.New("grid: width and height must be non-negative")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrEmptyNeighbourhood indicates a neighbourhood without offsets.
	ErrEmptyNeighbourhood = errors.New("grid: neighbourhood must contain at least one offset")
	// ErrDuplicateOffset indicates the same offset listed twice in a neighbourhood.
	ErrDuplicateOffset = errors.New("grid: neighbourhood offsets must be distinct")
	// ErrUnknownNeighbourhood indicates an unsupported neighbourhood name.
	ErrUnknownNeighbourhood = errors.New("grid: unknown neighbourhood name")
)

// Coord is an integer 2D position.
type Coord struct {
	X, Y int
}

// Add returns c displaced by o.
func (c Coord) Add(o Offset) Coord {
	return Coord{X: c.X + o.DX, Y: c.Y + o.DY}
}

// Sub returns the offset leading from d to c.
func (c Coord) Sub(d Coord) Offset {
	return Offset{DX: c.X - d.X, DY: c.Y - d.Y}
}

// String formats the coordinate as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Offset is an integer 2D displacement.
type Offset struct {
	DX, DY int
}

// Neg returns the opposite displacement.
func (o Offset) Neg() Offset {
	return Offset{DX: -o.DX, DY: -o.DY}
}

// IsZero reports whether o is the "self" offset.
func (o Offset) IsZero() bool {
	return o.DX == 0 && o.DY == 0
}

// String formats the offset as "<dx,dy>".
func (o Offset) String() string {
	return fmt.Sprintf("<%d,%d>", o.DX, o.DY)
}

// Neighbourhood is an ordered, finite sequence of distinct offsets.
// It is fixed for one generation run and defines both the sampling window of
// a tile and the set of constraint edges propagated during collapse.
type Neighbourhood []Offset

// Cross returns the 4-connected neighbourhood: W, S, E, N (y grows downwards).
func Cross() Neighbourhood {
	return Neighbourhood{
		{DX: -1, DY: 0},
		{DX: 0, DY: 1},
		{DX: 1, DY: 0},
		{DX: 0, DY: -1},
	}
}

// Square returns the 8-connected neighbourhood, walking the ring clockwise from W.
func Square() Neighbourhood {
	return Neighbourhood{
		{DX: -1, DY: 0},
		{DX: -1, DY: 1},
		{DX: 0, DY: 1},
		{DX: 1, DY: 1},
		{DX: 1, DY: 0},
		{DX: 1, DY: -1},
		{DX: 0, DY: -1},
		{DX: -1, DY: -1},
	}
}

// ByName resolves the neighbourhood names accepted by configuration files:
// "cross", "square", "cross+self" and "square+self".
func ByName(name string) (Neighbourhood, error) {
	switch name {
	case "cross":
		return Cross(), nil
	case "square":
		return Square(), nil
	case "cross+self":
		return Cross().WithSelf(), nil
	case "square+self":
		return Square().WithSelf(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNeighbourhood, name)
	}
}

// WithSelf returns a copy of n with the zero offset prepended.
// If n already contains the zero offset, the copy is returned unchanged.
func (n Neighbourhood) WithSelf() Neighbourhood {
	if _, ok := n.SelfIndex(); ok {
		return append(Neighbourhood(nil), n...)
	}
	out := make(Neighbourhood, 0, len(n)+1)
	out = append(out, Offset{})

	return append(out, n...)
}

// Validate checks that n is non-empty and free of duplicates.
func (n Neighbourhood) Validate() error {
	if len(n) == 0 {
		return ErrEmptyNeighbourhood
	}
	seen := make(map[Offset]int, len(n))
	for i, o := range n {
		if j, dup := seen[o]; dup {
			return fmt.Errorf("%w: %v at positions %d and %d", ErrDuplicateOffset, o, j, i)
		}
		seen[o] = i
	}

	return nil
}

// IndexOf returns the position of o within n.
func (n Neighbourhood) IndexOf(o Offset) (int, bool) {
	for i, m := range n {
		if m == o {
			return i, true
		}
	}

	return -1, false
}

// SelfIndex returns the position of the zero offset, if n contains it.
func (n Neighbourhood) SelfIndex() (int, bool) {
	return n.IndexOf(Offset{})
}
