package grid_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilewave/grid"
)

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

// TestNew_Errors verifies that negative sizes are rejected and zero sizes collapse to 0×0.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name         string
		w, h         int
		err          error
		wantW, wantH int
	}{
		{"NegativeWidth", -1, 3, grid.ErrInvalidSize, 0, 0},
		{"NegativeHeight", 3, -2, grid.ErrInvalidSize, 0, 0},
		{"ZeroWidth", 0, 5, nil, 0, 0},
		{"ZeroHeight", 5, 0, nil, 0, 0},
		{"Regular", 4, 2, nil, 4, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := grid.New[int](tc.w, tc.h)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantW, g.Width())
			assert.Equal(t, tc.wantH, g.Height())
			assert.Equal(t, tc.wantW*tc.wantH, g.Len())
		})
	}
}

// TestFromRows checks deep copy, ragged detection and empty inputs.
func TestFromRows(t *testing.T) {
	rows := [][]int{{1, 2, 3}, {4, 5, 6}}
	g, err := grid.FromRows(rows)
	require.NoError(t, err)
	rows[0][0] = 99
	v, ok := g.Get(grid.Coord{X: 0, Y: 0})
	assert.True(t, ok)
	assert.Equal(t, 1, v, "FromRows must copy its input")
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}}, g.Rows())

	_, err = grid.FromRows([][]int{{1, 2}, {3}})
	assert.True(t, errors.Is(err, grid.ErrNonRectangular))

	empty, err := grid.FromRows[int](nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	empty, err = grid.FromRows([][]int{{}, {}})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

//----------------------------------------------------------------------------//
// Access
//----------------------------------------------------------------------------//

// TestAccess_OutOfBounds ensures every accessor reports absence instead of panicking.
func TestAccess_OutOfBounds(t *testing.T) {
	g, err := grid.NewFilled(3, 2, 7)
	require.NoError(t, err)

	for _, c := range []grid.Coord{{X: -1, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: -1}} {
		_, ok := g.Get(c)
		assert.False(t, ok, "Get(%v)", c)
		assert.Nil(t, g.Ptr(c), "Ptr(%v)", c)
		assert.False(t, g.Set(c, 1), "Set(%v)", c)
		_, ok = g.To1D(c)
		assert.False(t, ok, "To1D(%v)", c)
	}
	for _, i := range []int{-1, 6, 100} {
		_, ok := g.To2D(i)
		assert.False(t, ok, "To2D(%d)", i)
	}

	empty, err := grid.New[int](0, 0)
	require.NoError(t, err)
	_, ok := empty.To2D(0)
	assert.False(t, ok)
}

// TestIndexRoundTrip verifies To1D and To2D are inverse on every cell.
func TestIndexRoundTrip(t *testing.T) {
	g, err := grid.New[byte](5, 3)
	require.NoError(t, err)
	for i := 0; i < g.Len(); i++ {
		c, ok := g.To2D(i)
		require.True(t, ok)
		j, ok := g.To1D(c)
		require.True(t, ok)
		assert.Equal(t, i, j)
		assert.Equal(t, c.Y*5+c.X, i)
	}
}

// TestPtrMutation checks that Ptr exposes the stored cell.
func TestPtrMutation(t *testing.T) {
	g, err := grid.New[int](2, 2)
	require.NoError(t, err)
	p := g.Ptr(grid.Coord{X: 1, Y: 1})
	require.NotNil(t, p)
	*p = 42
	assert.Equal(t, 42, g.At(3))

	clone := g.Clone()
	clone.SetAt(3, 1)
	assert.Equal(t, 42, g.At(3), "Clone must not share the buffer")
}

// TestAllAndMap verifies row-major iteration order and Map shape.
func TestAllAndMap(t *testing.T) {
	g, err := grid.FromRows([][]int{{1, 2}, {3, 4}})
	require.NoError(t, err)

	var got []grid.Coord
	for c := range g.All() {
		got = append(got, c)
	}
	assert.Equal(t, []grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, got)

	doubled := grid.Map(g, func(_ grid.Coord, v int) int { return v * 2 })
	assert.Equal(t, [][]int{{2, 4}, {6, 8}}, doubled.Rows())
}

// TestString pads columns to the widest entry.
func TestString(t *testing.T) {
	g, err := grid.FromRows([][]int{{1, 100}, {22, 3}})
	require.NoError(t, err)
	assert.Equal(t, "[\n\t1,  100, \n\t22, 3,   \n]", g.String())
}

//----------------------------------------------------------------------------//
// Neighbourhood
//----------------------------------------------------------------------------//

// TestNeighbourhood covers the predefined sets, WithSelf and validation.
func TestNeighbourhood(t *testing.T) {
	assert.Len(t, grid.Cross(), 4)
	assert.Len(t, grid.Square(), 8)
	assert.NoError(t, grid.Cross().Validate())
	assert.NoError(t, grid.Square().Validate())

	_, ok := grid.Cross().SelfIndex()
	assert.False(t, ok)

	withSelf := grid.Cross().WithSelf()
	idx, ok := withSelf.SelfIndex()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Len(t, withSelf, 5)
	assert.Len(t, withSelf.WithSelf(), 5, "WithSelf must not add a second zero offset")

	assert.ErrorIs(t, grid.Neighbourhood{}.Validate(), grid.ErrEmptyNeighbourhood)
	dup := grid.Neighbourhood{{DX: 1}, {DY: 1}, {DX: 1}}
	assert.ErrorIs(t, dup.Validate(), grid.ErrDuplicateOffset)

	i, ok := grid.Square().IndexOf(grid.Offset{DX: 1, DY: 1})
	assert.True(t, ok)
	assert.Equal(t, 3, i)
	_, ok = grid.Cross().IndexOf(grid.Offset{DX: 1, DY: 1})
	assert.False(t, ok)
}

// TestByName resolves configuration names.
func TestByName(t *testing.T) {
	for _, name := range []string{"cross", "square", "cross+self", "square+self"} {
		n, err := grid.ByName(name)
		assert.NoError(t, err, name)
		assert.NoError(t, n.Validate(), name)
	}
	_, err := grid.ByName("hex")
	assert.ErrorIs(t, err, grid.ErrUnknownNeighbourhood)
}

// TestCoordArithmetic checks componentwise math.
func TestCoordArithmetic(t *testing.T) {
	c := grid.Coord{X: 2, Y: 3}
	o := grid.Offset{DX: -1, DY: 4}
	assert.Equal(t, grid.Coord{X: 1, Y: 7}, c.Add(o))
	assert.Equal(t, o, c.Add(o).Sub(c))
	assert.Equal(t, grid.Offset{DX: 1, DY: -4}, o.Neg())
	assert.True(t, grid.Offset{}.IsZero())
	assert.Equal(t, "(2,3)", c.String())
}
