// Package regions analyses the connectivity of a generated map, treating a
// grid of symbols as a graph whose vertices are the "kept" cells (floor,
// land, ...) and whose edges follow a Neighbourhood.
//
// What:
//
//   - Map wraps a *grid.Grid[T] together with a keep predicate.
//   - Components finds the connected regions of kept cells.
//   - Bridge computes a minimal set of cells to convert (0-1 BFS) so that
//     two regions touch.
//   - Connect digs such bridges into the grid until a single region remains.
//   - Summarize reports region count and sizes, used to reject maps whose
//     walkable area is split.
//
// Complexity:
//
//   - Components: O(W×H×d), Memory: O(W×H)    (d = |Neighbourhood|).
//   - Bridge:     O(W×H×d), Memory: O(W×H).
//   - Connect:    O(R×W×H×d), R = number of regions.
//   - Summarize:  O(W×H×d + R log R), R = number of regions.
//
// Errors:
//
//   - ErrEmptyGrid: the grid has no cells.
//   - ErrNilPredicate: no keep predicate was given.
//   - ErrComponentIndex: requested component index out of range.
//   - ErrNoPath: no conversion path exists between the given components.
//   - ErrFillNotKept: Connect was asked to fill with a value it would not keep.
//   - ErrAsymmetric: Connect received a neighbourhood that is not symmetric.
package regions
