// Package wave holds the per-cell superpositions of an output grid and the
// entropy hierarchy that orders cells for collapse.
//
// What:
//
//   - Every output cell starts with the full tile universe 0..NumTiles-1.
//   - Sets only shrink: Reduce intersects, Remove drops one tile, CollapseTo
//     intersects with a singleton. Entropy is therefore non-increasing.
//   - The hierarchy keeps, per entropy level, the bitset of cell indices at
//     that level, and a btree of the non-empty levels above 1. PickLowest
//     reads the smallest such level and picks a cell uniformly from it.
//   - Every level change goes through one private move method, so bucket
//     membership always matches the current entropy.
//
// Complexity:
//
//   - Reduce, CollapseTo: O(U/64) for the set plus O(log L) for the level tree.
//   - Remove: O(log L).
//   - PickLowest: O(log L + C/64), C = cells.
//   - IsConverged: O(1).
//
// Errors:
//
//   - ErrNoTiles: a non-empty output was requested over an empty universe.
//   - ErrCellIndex: a cell index outside 0..Len()-1.
//   - ErrTileIndex: a tile outside 0..NumTiles()-1.
//   - grid.ErrInvalidSize: negative output size.
package wave
