package grid

import (
	"fmt"
	"iter"
	"strings"
)

// Grid is a rectangular buffer of width×height cells stored row-major.
// Invariant: len(buf) == width*height.
type Grid[T any] struct {
	width, height int
	buf           []T
}

// New allocates a width×height grid holding zero values.
// A zero width or height yields an empty 0×0 grid.
// Returns ErrInvalidSize for negative dimensions.
// Complexity: O(W×H).
func New[T any](width, height int) (*Grid[T], error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width == 0 || height == 0 {
		width, height = 0, 0
	}

	return &Grid[T]{width: width, height: height, buf: make([]T, width*height)}, nil
}

// NewFilled allocates a width×height grid with every cell set to v.
func NewFilled[T any](width, height int, v T) (*Grid[T], error) {
	g, err := New[T](width, height)
	if err != nil {
		return nil, err
	}
	for i := range g.buf {
		g.buf[i] = v
	}

	return g, nil
}

// FromRows builds a grid from rows[y][x], deep-copying the input.
// An empty input (no rows, or rows without columns) yields an empty grid.
// Returns ErrNonRectangular if any row length differs from the first.
func FromRows[T any](rows [][]T) (*Grid[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		for _, row := range rows {
			if len(row) != 0 {
				return nil, ErrNonRectangular
			}
		}

		return New[T](0, 0)
	}
	h, w := len(rows), len(rows[0])
	g := &Grid[T]{width: w, height: h, buf: make([]T, 0, w*h)}
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, y, len(row), w)
		}
		g.buf = append(g.buf, row...)
	}

	return g, nil
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return g.height }

// Len returns the number of cells (width*height).
func (g *Grid[T]) Len() int { return len(g.buf) }

// InBounds reports whether c lies within the grid.
func (g *Grid[T]) InBounds(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.width && c.Y < g.height
}

// To1D maps c to its row-major index, or reports false when c is out of bounds.
func (g *Grid[T]) To1D(c Coord) (int, bool) {
	if !g.InBounds(c) {
		return -1, false
	}

	return c.Y*g.width + c.X, true
}

// To2D maps a row-major index back to its coordinate, or reports false when
// the index is out of range.
func (g *Grid[T]) To2D(i int) (Coord, bool) {
	if i < 0 || i >= len(g.buf) {
		return Coord{}, false
	}

	return Coord{X: i % g.width, Y: i / g.width}, true
}

// Get returns the value at c; ok is false when c is out of bounds.
func (g *Grid[T]) Get(c Coord) (v T, ok bool) {
	i, ok := g.To1D(c)
	if !ok {
		return v, false
	}

	return g.buf[i], true
}

// Ptr returns a pointer to the cell at c for in-place mutation, or nil when
// c is out of bounds.
func (g *Grid[T]) Ptr(c Coord) *T {
	i, ok := g.To1D(c)
	if !ok {
		return nil
	}

	return &g.buf[i]
}

// Set stores v at c and reports whether c was in bounds.
func (g *Grid[T]) Set(c Coord, v T) bool {
	i, ok := g.To1D(c)
	if !ok {
		return false
	}
	g.buf[i] = v

	return true
}

// At returns the value at flat index i. The caller guarantees 0 <= i < Len().
func (g *Grid[T]) At(i int) T { return g.buf[i] }

// SetAt stores v at flat index i. The caller guarantees 0 <= i < Len().
func (g *Grid[T]) SetAt(i int, v T) { g.buf[i] = v }

// All iterates over every cell in row-major order.
func (g *Grid[T]) All() iter.Seq2[Coord, T] {
	return func(yield func(Coord, T) bool) {
		for i, v := range g.buf {
			if !yield(Coord{X: i % g.width, Y: i / g.width}, v) {
				return
			}
		}
	}
}

// Clone returns a shallow copy of the grid buffer.
func (g *Grid[T]) Clone() *Grid[T] {
	return &Grid[T]{width: g.width, height: g.height, buf: append([]T(nil), g.buf...)}
}

// Rows returns the grid as freshly allocated rows[y][x].
func (g *Grid[T]) Rows() [][]T {
	rows := make([][]T, g.height)
	for y := range rows {
		rows[y] = append([]T(nil), g.buf[y*g.width:(y+1)*g.width]...)
	}

	return rows
}

// Map builds a new grid of the same shape by applying fn to every cell.
func Map[T, U any](g *Grid[T], fn func(Coord, T) U) *Grid[U] {
	out := &Grid[U]{width: g.width, height: g.height, buf: make([]U, len(g.buf))}
	for i, v := range g.buf {
		out.buf[i] = fn(Coord{X: i % g.width, Y: i / g.width}, v)
	}

	return out
}

// String renders the grid with every column padded to its widest entry,
// one row per line, which keeps superposition dumps readable.
func (g *Grid[T]) String() string {
	cells := make([]string, len(g.buf))
	pad := make([]int, g.width)
	for i, v := range g.buf {
		cells[i] = fmt.Sprintf("%v,", v)
		if x := i % g.width; len(cells[i]) > pad[x] {
			pad[x] = len(cells[i])
		}
	}

	var sb strings.Builder
	sb.WriteString("[\n")
	for y := 0; y < g.height; y++ {
		sb.WriteByte('\t')
		for x := 0; x < g.width; x++ {
			fmt.Fprintf(&sb, "%-*s", pad[x]+1, cells[y*g.width+x])
		}
		sb.WriteString("\n")
	}
	sb.WriteString("]")

	return sb.String()
}
