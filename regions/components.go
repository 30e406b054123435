package regions

// Components finds all contiguous regions of kept cells according to the
// neighbourhood. Components are ordered by their first cell in row-major
// order; each component lists its cell indices in BFS order from that cell.
//
// Time:   O(W·H·d).
// Memory: O(W·H) for visited flags and output.
func (m *Map[T]) Components() [][]int {
	total := m.g.Len()
	seen := make([]bool, total)
	var comps [][]int

	for i0 := 0; i0 < total; i0++ {
		if seen[i0] || !m.kept(i0) {
			continue
		}
		// BFS to collect component
		queue := []int{i0}
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			u, _ := m.g.To2D(queue[qi])
			for _, d := range m.offsets {
				vi, ok := m.g.To1D(u.Add(d))
				if !ok || seen[vi] || !m.kept(vi) {
					continue
				}
				seen[vi] = true
				queue = append(queue, vi)
			}
		}
		comps = append(comps, queue)
	}

	return comps
}
