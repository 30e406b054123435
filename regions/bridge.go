package regions

import (
	"slices"

	"github.com/katalvlaran/tilewave/grid"
)

// Bridge finds a minimum-conversion path of non-kept cells connecting any
// cell of component srcComp to any cell of component dstComp, as indexed by
// Components(). Each converted cell costs 1.
// Returns the row-major cell indices of the path (including the start and
// end kept cells) and the number of cells to convert.
//
// Complexity: O(W·H·d). Memory: O(W·H).
func (m *Map[T]) Bridge(srcComp, dstComp int) (path []int, cost int, err error) {
	label, comps := m.labels()
	if srcComp < 0 || srcComp >= len(comps) || dstComp < 0 || dstComp >= len(comps) {
		return nil, 0, ErrComponentIndex
	}

	return m.cheapest(comps[srcComp], func(i int) bool { return label[i] == dstComp })
}

// Connect converts non-kept cells of g to fill until its kept cells form a
// single region. Each round digs the cheapest tunnel from the first region
// to whichever region is nearest. The returned coordinates are the
// converted cells in dig order; nil when g was already connected.
//
// Connect mutates g. The neighbourhood must be symmetric.
//
// Complexity: O(R×W×H×d) for R regions.
func Connect[T comparable](g *grid.Grid[T], n grid.Neighbourhood, keep func(T) bool, fill T) ([]grid.Coord, error) {
	m, err := New(g, n, keep)
	if err != nil {
		return nil, err
	}
	if !keep(fill) {
		return nil, ErrFillNotKept
	}
	for _, o := range m.offsets {
		if !slices.Contains(m.offsets, o.Neg()) {
			return nil, ErrAsymmetric
		}
	}

	var dug []grid.Coord
	for {
		label, comps := m.labels()
		if len(comps) <= 1 {
			return dug, nil
		}
		path, _, err := m.cheapest(comps[0], func(i int) bool { return label[i] > 0 })
		if err != nil {
			return dug, err
		}
		for _, i := range path {
			if m.kept(i) {
				continue
			}
			g.SetAt(i, fill)
			c, _ := g.To2D(i)
			dug = append(dug, c)
		}
	}
}

// labels maps every cell to the index of its component, -1 when not kept.
func (m *Map[T]) labels() ([]int, [][]int) {
	comps := m.Components()
	label := make([]int, m.g.Len())
	for i := range label {
		label[i] = -1
	}
	for c, cells := range comps {
		for _, i := range cells {
			label[i] = c
		}
	}

	return label, comps
}

// cheapest is a multi-source 0-1 BFS from the cells in from to the first
// cell accepted by target. Entering a kept cell is free and entering any
// other cell costs 1. Cells are expanded level by level in cost order, so
// each cell is settled the first time it is reached.
func (m *Map[T]) cheapest(from []int, target func(int) bool) ([]int, int, error) {
	dist := make([]int, m.g.Len())
	prev := make([]int, m.g.Len())
	for i := range dist {
		dist[i], prev[i] = -1, -1
	}
	level := slices.Clone(from)
	for _, i := range from {
		dist[i] = 0
	}

	for cost := 0; len(level) > 0; cost++ {
		var next []int
		// level grows while it is walked: free moves stay at this cost
		for qi := 0; qi < len(level); qi++ {
			u := level[qi]
			if target(u) {
				return trace(prev, u), cost, nil
			}
			uc, _ := m.g.To2D(u)
			for _, d := range m.offsets {
				v, ok := m.g.To1D(uc.Add(d))
				if !ok || dist[v] >= 0 {
					continue
				}
				prev[v] = u
				if m.kept(v) {
					dist[v] = cost
					level = append(level, v)
				} else {
					dist[v] = cost + 1
					next = append(next, v)
				}
			}
		}
		level = next
	}

	return nil, 0, ErrNoPath
}

// trace walks prev back from end and returns the path in forward order.
func trace(prev []int, end int) []int {
	var path []int
	for at := end; at >= 0; at = prev[at] {
		path = append(path, at)
	}
	slices.Reverse(path)

	return path
}
