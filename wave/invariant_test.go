package wave

import (
	"math/rand/v2"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/require"
)

// checkHierarchy verifies that every cell sits in exactly the level of its
// entropy and that the tree lists exactly the non-empty levels above 1.
func checkHierarchy(t *testing.T, w *Wave) {
	t.Helper()
	for i, e := range w.entropy {
		require.Equal(t, int(w.cells.At(i).Count()), e, "cell %d", i)
		for lvl := range w.levels {
			require.Equal(t, lvl == e, w.levels[lvl].Test(uint(i)), "cell %d level %d", i, lvl)
		}
	}
	for lvl := range w.levels {
		require.Equal(t, int(w.levels[lvl].Count()), w.counts[lvl], "level %d", lvl)
		_, inTree := w.open.Get(lvl)
		require.Equal(t, lvl > 1 && w.counts[lvl] > 0, inTree, "level %d", lvl)
	}
}

func TestHierarchy_RandomOps(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	const tiles = 7
	w, err := New(5, 4, tiles)
	require.NoError(t, err)
	checkHierarchy(t, w)

	for step := 0; step < 300; step++ {
		i := r.IntN(w.Len())
		switch r.IntN(3) {
		case 0:
			allowed := bitset.New(tiles)
			for b := uint(0); b < tiles; b++ {
				if r.IntN(3) != 0 {
					allowed.Set(b)
				}
			}
			_, err = w.Reduce(i, allowed)
		case 1:
			_, err = w.Remove(i, r.IntN(tiles))
		default:
			_, err = w.CollapseTo(i, r.IntN(tiles))
		}
		require.NoError(t, err)
		checkHierarchy(t, w)
	}
}
