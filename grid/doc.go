// Package grid provides the bounded 2D buffer shared by every stage of the
// tile-map generator, together with the coordinate and offset value types
// and the Neighbourhood that defines both pattern windows and constraint edges.
//
// What:
//
//   - Grid[T] is a rectangular width×height buffer stored row-major:
//     cell (x,y) lives at index y*width+x.
//   - Get, Ptr and Set never panic on out-of-bounds coordinates; they report
//     absence instead.
//   - To1D / To2D convert between coordinates and flat indices, both bounds-checked.
//   - Neighbourhood is an ordered list of distinct Offsets. Cross() and Square()
//     return the 4- and 8-connected neighbourhoods; WithSelf adds the zero offset.
//
// Complexity:
//
//   - Get, Set, Ptr, To1D, To2D: O(1).
//   - New, Clone, FromRows: O(W×H) time and memory.
//
// Errors:
//
//   - ErrInvalidSize: negative width or height.
//   - ErrNonRectangular: FromRows received rows of differing lengths.
//   - ErrEmptyNeighbourhood / ErrDuplicateOffset: Neighbourhood.Validate failures.
//   - ErrUnknownNeighbourhood: ByName received an unsupported name.
package grid
