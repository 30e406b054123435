// Package materialize turns a finished wave back into concrete values.
//
// Materialize requires every cell to hold exactly one tile and returns the
// output grid. Diagnose never fails: it classifies every cell as Resolved,
// Unresolved (entropy above 1) or Contradicted (entropy 0) and fills values
// only for resolved cells.
//
// The value of a resolved cell comes from, in order:
//
//  1. the self sample of its tile, when the neighbourhood has the zero offset;
//  2. the caller's Projection, when one is supplied;
//  3. the value of the tile's representative example cell.
//
// Errors:
//
//   - ErrNotConverged: Materialize received a wave with unresolved or
//     contradicted cells.
//   - ErrNilInput: nil catalog or wave.
//   - ErrTileMismatch: the wave holds a tile the catalog does not know.
package materialize
