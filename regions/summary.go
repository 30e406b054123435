package regions

import (
	"slices"
)

// Summary condenses the region structure of a map.
type Summary struct {
	Cells      int   // all cells of the grid
	Kept       int   // cells accepted by the predicate
	Components int   // number of regions
	Sizes      []int // region sizes, largest first
}

// Connected reports whether all kept cells form at most one region.
func (s Summary) Connected() bool { return s.Components <= 1 }

// Largest returns the size of the biggest region, or 0 when there is none.
func (s Summary) Largest() int {
	if len(s.Sizes) == 0 {
		return 0
	}

	return s.Sizes[0]
}

// Coverage returns Kept/Cells.
func (s Summary) Coverage() float64 {
	if s.Cells == 0 {
		return 0
	}

	return float64(s.Kept) / float64(s.Cells)
}

// Summarize computes the Summary of m.
func (m *Map[T]) Summarize() Summary {
	comps := m.Components()
	s := Summary{Cells: m.g.Len(), Components: len(comps), Sizes: make([]int, len(comps))}
	for i, c := range comps {
		s.Sizes[i] = len(c)
		s.Kept += len(c)
	}
	slices.SortFunc(s.Sizes, func(a, b int) int { return b - a })

	return s
}
