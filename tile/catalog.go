package tile

import (
	"encoding/binary"
	"fmt"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"

	"github.com/katalvlaran/tilewave/grid"
)

// Catalog is the canonical tile set of one example grid. It is immutable
// once Extract returns.
type Catalog[T comparable] struct {
	example *grid.Grid[T]
	nbhd    grid.Neighbourhood
	edge    EdgeMode

	tiles   []Tile[T]      // ID → pattern
	ids     *grid.Grid[ID] // example cell → ID
	members [][]grid.Coord // ID → example cells, row-major
}

// hashFunc digests a Tile. Extract uses contentHash; tests substitute a
// degenerate function to exercise the equality fallback.
type hashFunc[T comparable] func(Tile[T]) uint64

// Extract samples every example cell through n and canonicalises the
// resulting tiles.
//
// Steps:
//  1. Validate the example (non-empty) and the neighbourhood.
//  2. Walk the example row-major; for each cell build its Tile.
//  3. Look the Tile up in its hash bucket; on a structural match reuse that
//     ID, otherwise assign the next dense ID.
//
// Complexity: O(W×H×|N|).
func Extract[T comparable](example *grid.Grid[T], n grid.Neighbourhood, opts ...Option) (*Catalog[T], error) {
	seed := maphash.MakeSeed()

	return extract(example, n, func(t Tile[T]) uint64 { return contentHash(seed, t) }, opts...)
}

func extract[T comparable](example *grid.Grid[T], n grid.Neighbourhood, hash hashFunc[T], opts ...Option) (*Catalog[T], error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if example == nil || example.Len() == 0 {
		return nil, ErrEmptyExample
	}
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("tile: %w", err)
	}

	ids, err := grid.New[ID](example.Width(), example.Height())
	if err != nil {
		return nil, err
	}
	c := &Catalog[T]{
		example: example,
		nbhd:    append(grid.Neighbourhood(nil), n...),
		edge:    o.Edge,
		ids:     ids,
	}

	buckets := make(map[uint64][]ID)
	for i := 0; i < example.Len(); i++ {
		cell, _ := example.To2D(i)
		t := c.sample(cell)
		h := hash(t)

		id, found := ID(-1), false
		for _, cand := range buckets[h] {
			if c.tiles[cand].Equal(t) {
				id, found = cand, true
				break
			}
		}
		if !found {
			id = ID(len(c.tiles))
			c.tiles = append(c.tiles, t)
			c.members = append(c.members, nil)
			buckets[h] = append(buckets[h], id)
		}
		ids.SetAt(i, id)
		c.members[id] = append(c.members[id], cell)
	}

	return c, nil
}

// sample builds the Tile of one example cell.
func (c *Catalog[T]) sample(cell grid.Coord) Tile[T] {
	t := make(Tile[T], len(c.nbhd))
	for k, off := range c.nbhd {
		if at, ok := c.Resolve(cell, off); ok {
			v, _ := c.example.Get(at)
			t[k] = Sample[T]{Value: v, Present: true}
		}
	}

	return t
}

// contentHash digests a tile: one presence byte per sample followed by the
// little-endian maphash of present values.
func contentHash[T comparable](seed maphash.Seed, t Tile[T]) uint64 {
	d := xxhash.New()
	var buf [9]byte
	for _, s := range t {
		if !s.Present {
			_, _ = d.Write(buf[:1])
			continue
		}
		buf[0] = 1
		binary.LittleEndian.PutUint64(buf[1:], maphash.Comparable(seed, s.Value))
		_, _ = d.Write(buf[:])
		buf[0] = 0
	}

	return d.Sum64()
}

// Resolve maps cell+o onto the example according to the edge mode.
// ok is false when the target lies outside the example in clamp mode.
func (c *Catalog[T]) Resolve(cell grid.Coord, o grid.Offset) (grid.Coord, bool) {
	at := cell.Add(o)
	if c.edge == EdgeWrap {
		w, h := c.example.Width(), c.example.Height()
		at.X = ((at.X % w) + w) % w
		at.Y = ((at.Y % h) + h) % h

		return at, true
	}

	return at, c.example.InBounds(at)
}

// Len returns the number of distinct tiles.
func (c *Catalog[T]) Len() int { return len(c.tiles) }

// Tile returns a copy of the pattern behind id.
func (c *Catalog[T]) Tile(id ID) (Tile[T], bool) {
	if !c.valid(id) {
		return nil, false
	}

	return append(Tile[T](nil), c.tiles[id]...), true
}

// IDAt returns the tile ID of an example cell.
func (c *Catalog[T]) IDAt(cell grid.Coord) (ID, bool) {
	return c.ids.Get(cell)
}

// Representative returns the first example cell (row-major) carrying id.
func (c *Catalog[T]) Representative(id ID) (grid.Coord, bool) {
	if !c.valid(id) {
		return grid.Coord{}, false
	}

	return c.members[id][0], true
}

// Members returns every example cell carrying id, in row-major order.
func (c *Catalog[T]) Members(id ID) []grid.Coord {
	if !c.valid(id) {
		return nil
	}

	return append([]grid.Coord(nil), c.members[id]...)
}

// Frequency returns how many example cells carry id.
func (c *Catalog[T]) Frequency(id ID) int {
	if !c.valid(id) {
		return 0
	}

	return len(c.members[id])
}

// SelfValue returns the zero-offset sample of id when the neighbourhood
// includes the self offset.
func (c *Catalog[T]) SelfValue(id ID) (v T, ok bool) {
	k, ok := c.nbhd.SelfIndex()
	if !ok || !c.valid(id) {
		return v, false
	}

	return c.tiles[id].At(k)
}

// Neighbourhood returns a copy of the sampling neighbourhood.
func (c *Catalog[T]) Neighbourhood() grid.Neighbourhood {
	return append(grid.Neighbourhood(nil), c.nbhd...)
}

// Example returns the example grid the catalog was built from.
// Callers must not mutate it.
func (c *Catalog[T]) Example() *grid.Grid[T] { return c.example }

// Edge returns the border sampling mode.
func (c *Catalog[T]) Edge() EdgeMode { return c.edge }

func (c *Catalog[T]) valid(id ID) bool {
	return id >= 0 && int(id) < len(c.tiles)
}
