package wave

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/google/btree"

	"github.com/katalvlaran/tilewave/grid"
)

// btreeDegree is the fan-out of the level tree; it holds at most NumTiles levels.
const btreeDegree = 8

// Wave is the mutable superposition state of one run. It is owned by a
// single engine and is not safe for concurrent use.
type Wave struct {
	cells    *grid.Grid[*bitset.BitSet]
	numTiles int

	entropy []int            // cell → |set|
	levels  []*bitset.BitSet // entropy → cells at that entropy
	counts  []int            // entropy → number of cells at that entropy
	open    *btree.BTreeG[int]
	contra  []int // cells that reached entropy 0, in order
}

// New creates a width×height wave where every cell admits all numTiles tiles.
// Returns ErrNoTiles when numTiles is zero (or negative) and the output has
// at least one cell.
// Complexity: O(W×H×U/64).
func New(width, height, numTiles int) (*Wave, error) {
	cells, err := grid.New[*bitset.BitSet](width, height)
	if err != nil {
		return nil, fmt.Errorf("wave: %w", err)
	}
	n := cells.Len()
	if numTiles < 0 || (numTiles == 0 && n > 0) {
		return nil, fmt.Errorf("%w: %d tiles for %d cells", ErrNoTiles, numTiles, n)
	}

	w := &Wave{
		cells:    cells,
		numTiles: numTiles,
		entropy:  make([]int, n),
		levels:   make([]*bitset.BitSet, numTiles+1),
		counts:   make([]int, numTiles+1),
		open:     btree.NewOrderedG[int](btreeDegree),
	}
	for lvl := range w.levels {
		w.levels[lvl] = bitset.New(uint(n))
	}
	for i := 0; i < n; i++ {
		s := bitset.New(uint(numTiles))
		s.FlipRange(0, uint(numTiles))
		cells.SetAt(i, s)
		w.entropy[i] = numTiles
	}
	if n > 0 {
		w.levels[numTiles].FlipRange(0, uint(n))
		w.counts[numTiles] = n
		if numTiles > 1 {
			w.open.ReplaceOrInsert(numTiles)
		}
	}

	return w, nil
}

// move relocates cell i to level to. It is the only place that touches
// levels, counts, open and contra.
func (w *Wave) move(i, to int) {
	from := w.entropy[i]
	if from == to {
		return
	}
	w.levels[from].Clear(uint(i))
	w.counts[from]--
	if from > 1 && w.counts[from] == 0 {
		w.open.Delete(from)
	}
	w.levels[to].Set(uint(i))
	w.counts[to]++
	if to > 1 && w.counts[to] == 1 {
		w.open.ReplaceOrInsert(to)
	}
	if to == 0 {
		w.contra = append(w.contra, i)
	}
	w.entropy[i] = to
}

func (w *Wave) checkCell(i int) error {
	if i < 0 || i >= len(w.entropy) {
		return fmt.Errorf("%w: %d", ErrCellIndex, i)
	}

	return nil
}

// Reduce intersects the set of cell i with allowed.
// A cell that is already empty reports Contradiction again.
func (w *Wave) Reduce(i int, allowed *bitset.BitSet) (Outcome, error) {
	if err := w.checkCell(i); err != nil {
		return Unchanged, err
	}
	if w.entropy[i] == 0 {
		return Contradiction, nil
	}
	s := w.cells.At(i)
	n := int(s.IntersectionCardinality(allowed))
	if n == w.entropy[i] {
		return Unchanged, nil
	}
	s.InPlaceIntersection(allowed)
	w.move(i, n)
	if n == 0 {
		return Contradiction, nil
	}

	return Changed, nil
}

// Remove drops tile t from cell i.
func (w *Wave) Remove(i, t int) (Outcome, error) {
	if err := w.checkCell(i); err != nil {
		return Unchanged, err
	}
	if t < 0 || t >= w.numTiles {
		return Unchanged, fmt.Errorf("%w: %d", ErrTileIndex, t)
	}
	s := w.cells.At(i)
	if !s.Test(uint(t)) {
		return Unchanged, nil
	}
	s.Clear(uint(t))
	w.move(i, w.entropy[i]-1)
	if w.entropy[i] == 0 {
		return Contradiction, nil
	}

	return Changed, nil
}

// CollapseTo intersects cell i with the singleton {t}. If t was no longer
// admissible the cell becomes empty and Contradiction is returned.
func (w *Wave) CollapseTo(i, t int) (Outcome, error) {
	if err := w.checkCell(i); err != nil {
		return Unchanged, err
	}
	if t < 0 || t >= w.numTiles {
		return Unchanged, fmt.Errorf("%w: %d", ErrTileIndex, t)
	}

	return w.Reduce(i, bitset.New(uint(w.numTiles)).Set(uint(t)))
}

// PickLowest returns a cell with the smallest entropy strictly above 1,
// chosen uniformly among the cells at that level. ok is false when every
// cell has entropy at most 1.
func (w *Wave) PickLowest(r Rand) (int, bool) {
	lvl, ok := w.open.Min()
	if !ok {
		return -1, false
	}
	k := r.IntN(w.counts[lvl])
	b := w.levels[lvl]
	i, _ := b.NextSet(0)
	for ; k > 0; k-- {
		i, _ = b.NextSet(i + 1)
	}

	return int(i), true
}

// IsConverged reports whether no cell has entropy above 1.
func (w *Wave) IsConverged() bool { return w.open.Len() == 0 }

// Contradicted returns the cells that reached entropy 0, in the order they did.
func (w *Wave) Contradicted() []int { return append([]int(nil), w.contra...) }

// CollapsedCount returns the number of cells with entropy exactly 1.
func (w *Wave) CollapsedCount() int {
	if len(w.counts) < 2 {
		return 0
	}

	return w.counts[1]
}

// LowestOpen returns the smallest entropy above 1 currently held by a cell.
func (w *Wave) LowestOpen() (int, bool) { return w.open.Min() }

// Entropy returns |set| of cell i, or -1 when i is out of range.
func (w *Wave) Entropy(i int) int {
	if w.checkCell(i) != nil {
		return -1
	}

	return w.entropy[i]
}

// Set returns the live set of cell i, or nil when i is out of range.
// Callers must treat it as read-only; use Snapshot for a copy.
func (w *Wave) Set(i int) *bitset.BitSet {
	if w.checkCell(i) != nil {
		return nil
	}

	return w.cells.At(i)
}

// TileAt returns the single tile of a collapsed cell.
func (w *Wave) TileAt(i int) (int, bool) {
	if w.Entropy(i) != 1 {
		return -1, false
	}
	t, _ := w.cells.At(i).NextSet(0)

	return int(t), true
}

// Index maps an output coordinate to its cell index.
func (w *Wave) Index(c grid.Coord) (int, bool) { return w.cells.To1D(c) }

// Coord maps a cell index to its output coordinate.
func (w *Wave) Coord(i int) (grid.Coord, bool) { return w.cells.To2D(i) }

// Width returns the output width.
func (w *Wave) Width() int { return w.cells.Width() }

// Height returns the output height.
func (w *Wave) Height() int { return w.cells.Height() }

// Len returns the number of output cells.
func (w *Wave) Len() int { return w.cells.Len() }

// NumTiles returns the size of the tile universe.
func (w *Wave) NumTiles() int { return w.numTiles }

// Snapshot copies the current superpositions.
// Complexity: O(W×H×U/64).
func (w *Wave) Snapshot() *Snapshot {
	sets := grid.Map(w.cells, func(_ grid.Coord, s *bitset.BitSet) *bitset.BitSet { return s.Clone() })

	return &Snapshot{
		sets:     sets,
		entropy:  append([]int(nil), w.entropy...),
		numTiles: w.numTiles,
	}
}

// Snapshot is an immutable copy of a Wave taken for diagnostics.
type Snapshot struct {
	sets     *grid.Grid[*bitset.BitSet]
	entropy  []int
	numTiles int
}

// Width returns the output width.
func (s *Snapshot) Width() int { return s.sets.Width() }

// Height returns the output height.
func (s *Snapshot) Height() int { return s.sets.Height() }

// Len returns the number of output cells.
func (s *Snapshot) Len() int { return s.sets.Len() }

// NumTiles returns the size of the tile universe.
func (s *Snapshot) NumTiles() int { return s.numTiles }

// Entropy returns |set| of cell i, or -1 when i is out of range.
func (s *Snapshot) Entropy(i int) int {
	if i < 0 || i >= len(s.entropy) {
		return -1
	}

	return s.entropy[i]
}

// Set returns a copy of the set of cell i, or nil when i is out of range.
func (s *Snapshot) Set(i int) *bitset.BitSet {
	if i < 0 || i >= s.sets.Len() {
		return nil
	}

	return s.sets.At(i).Clone()
}

// TileAt returns the single tile of a cell that was collapsed.
func (s *Snapshot) TileAt(i int) (int, bool) {
	if s.Entropy(i) != 1 {
		return -1, false
	}
	t, _ := s.sets.At(i).NextSet(0)

	return int(t), true
}

// String renders the entropy of every cell, one row per line.
func (s *Snapshot) String() string {
	e := grid.Map(s.sets, func(c grid.Coord, _ *bitset.BitSet) int {
		i, _ := s.sets.To1D(c)
		return s.entropy[i]
	})

	return e.String()
}
