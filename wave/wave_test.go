package wave_test

import (
	"math/rand/v2"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/wave"
)

// fixedRand returns a scripted sequence of draws, clamped to n.
type fixedRand struct{ draws []int }

func (f *fixedRand) IntN(n int) int {
	if len(f.draws) == 0 {
		return 0
	}
	d := f.draws[0]
	f.draws = f.draws[1:]

	return d % n
}

func set(n uint, bits ...uint) *bitset.BitSet {
	b := bitset.New(n)
	for _, i := range bits {
		b.Set(i)
	}

	return b
}

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

func TestNew(t *testing.T) {
	w, err := wave.New(3, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, w.Len())
	assert.Equal(t, 4, w.NumTiles())
	for i := 0; i < w.Len(); i++ {
		assert.Equal(t, 4, w.Entropy(i))
		assert.Equal(t, uint(4), w.Set(i).Count())
	}
	assert.False(t, w.IsConverged())
	lvl, ok := w.LowestOpen()
	assert.True(t, ok)
	assert.Equal(t, 4, lvl)
}

func TestNew_Errors(t *testing.T) {
	_, err := wave.New(2, 2, 0)
	assert.ErrorIs(t, err, wave.ErrNoTiles)

	_, err = wave.New(-1, 2, 3)
	assert.ErrorIs(t, err, grid.ErrInvalidSize)

	w, err := wave.New(0, 0, 0)
	require.NoError(t, err, "an empty output needs no tiles")
	assert.True(t, w.IsConverged())
}

// TestNew_SingleTile: a one-tile universe is converged from the start.
func TestNew_SingleTile(t *testing.T) {
	w, err := wave.New(3, 3, 1)
	require.NoError(t, err)
	assert.True(t, w.IsConverged())
	assert.Equal(t, 9, w.CollapsedCount())
	_, ok := w.PickLowest(&fixedRand{})
	assert.False(t, ok)
	tl, ok := w.TileAt(4)
	assert.True(t, ok)
	assert.Equal(t, 0, tl)
}

//----------------------------------------------------------------------------//
// Mutation
//----------------------------------------------------------------------------//

func TestReduce(t *testing.T) {
	w, err := wave.New(2, 1, 4)
	require.NoError(t, err)

	out, err := w.Reduce(0, set(4, 0, 1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, wave.Unchanged, out)

	out, err = w.Reduce(0, set(4, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, wave.Changed, out)
	assert.Equal(t, 2, w.Entropy(0))

	out, err = w.Reduce(0, set(4, 1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, wave.Unchanged, out, "sets never grow")
	assert.Equal(t, 2, w.Entropy(0))

	out, err = w.Reduce(0, set(4, 3))
	require.NoError(t, err)
	assert.Equal(t, wave.Contradiction, out)
	assert.Equal(t, 0, w.Entropy(0))
	assert.Equal(t, []int{0}, w.Contradicted())

	out, err = w.Reduce(0, set(4, 0, 1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, wave.Contradiction, out, "an empty cell stays contradicted")
	assert.Equal(t, []int{0}, w.Contradicted())

	_, err = w.Reduce(5, set(4))
	assert.ErrorIs(t, err, wave.ErrCellIndex)
}

func TestRemoveAndCollapse(t *testing.T) {
	w, err := wave.New(1, 1, 3)
	require.NoError(t, err)

	out, err := w.Remove(0, 1)
	require.NoError(t, err)
	assert.Equal(t, wave.Changed, out)
	out, err = w.Remove(0, 1)
	require.NoError(t, err)
	assert.Equal(t, wave.Unchanged, out)

	out, err = w.CollapseTo(0, 2)
	require.NoError(t, err)
	assert.Equal(t, wave.Changed, out)
	assert.True(t, w.IsConverged())
	tl, ok := w.TileAt(0)
	require.True(t, ok)
	assert.Equal(t, 2, tl)

	out, err = w.CollapseTo(0, 2)
	require.NoError(t, err)
	assert.Equal(t, wave.Unchanged, out)

	out, err = w.CollapseTo(0, 0)
	require.NoError(t, err)
	assert.Equal(t, wave.Contradiction, out, "collapsing to a pruned tile empties the cell")

	_, err = w.Remove(0, 3)
	assert.ErrorIs(t, err, wave.ErrTileIndex)
	_, err = w.CollapseTo(-1, 0)
	assert.ErrorIs(t, err, wave.ErrCellIndex)
}

//----------------------------------------------------------------------------//
// Entropy hierarchy
//----------------------------------------------------------------------------//

// TestPickLowest_Level: the pick always comes from the smallest level > 1.
func TestPickLowest_Level(t *testing.T) {
	w, err := wave.New(4, 1, 5)
	require.NoError(t, err)
	_, _ = w.Reduce(1, set(5, 0, 1, 2))
	_, _ = w.Reduce(2, set(5, 0, 1, 2))
	_, _ = w.Reduce(3, set(5, 4))

	r := rand.New(rand.NewPCG(1, 2))
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		c, ok := w.PickLowest(r)
		require.True(t, ok)
		seen[c] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true}, seen)

	_, _ = w.Reduce(1, set(5, 0))
	_, _ = w.Reduce(2, set(5, 0))
	c, ok := w.PickLowest(r)
	require.True(t, ok)
	assert.Equal(t, 0, c)

	_, _ = w.Reduce(0, set(5, 0))
	_, ok = w.PickLowest(r)
	assert.False(t, ok)
	assert.True(t, w.IsConverged())
	assert.Equal(t, 4, w.CollapsedCount())
}

// TestPickLowest_Draw maps the k-th draw onto the k-th cell of the level.
func TestPickLowest_Draw(t *testing.T) {
	w, err := wave.New(5, 1, 2)
	require.NoError(t, err)
	_, _ = w.Reduce(1, set(2, 0))

	for draw, want := range []int{0, 2, 3, 4} {
		c, ok := w.PickLowest(&fixedRand{draws: []int{draw}})
		require.True(t, ok)
		assert.Equal(t, want, c)
	}
}

// TestMonotonicity applies random reductions and checks that entropy never rises.
func TestMonotonicity(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	const tiles = 12
	w, err := wave.New(6, 6, tiles)
	require.NoError(t, err)

	prev := make([]int, w.Len())
	for i := range prev {
		prev[i] = w.Entropy(i)
	}
	for step := 0; step < 500; step++ {
		allowed := bitset.New(tiles)
		for b := uint(0); b < tiles; b++ {
			if r.IntN(4) != 0 {
				allowed.Set(b)
			}
		}
		i := r.IntN(w.Len())
		_, err := w.Reduce(i, allowed)
		require.NoError(t, err)
		for j := range prev {
			cur := w.Entropy(j)
			require.LessOrEqual(t, cur, prev[j], "cell %d at step %d", j, step)
			prev[j] = cur
		}
	}
}

func TestSnapshot_IsCopy(t *testing.T) {
	w, err := wave.New(2, 2, 3)
	require.NoError(t, err)
	snap := w.Snapshot()
	_, _ = w.CollapseTo(0, 1)

	assert.Equal(t, 3, snap.Entropy(0))
	assert.Equal(t, 1, w.Entropy(0))
	_, ok := snap.TileAt(0)
	assert.False(t, ok)
	snap.Set(0).ClearAll()
	assert.Equal(t, uint(3), snap.Set(0).Count())
	assert.Equal(t, -1, snap.Entropy(9))
	assert.Equal(t, "[\n\t3, 3, \n\t3, 3, \n]", snap.String())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "unchanged", wave.Unchanged.String())
	assert.Equal(t, "changed", wave.Changed.String())
	assert.Equal(t, "contradiction", wave.Contradiction.String())
}
