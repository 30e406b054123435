// Package tile extracts the local neighbourhood patterns ("tiles") of an
// example grid and canonicalises duplicates into dense integer IDs.
//
// What:
//
//   - For every example cell c, the Tile is the ordered sequence of samples
//     taken at c+o for each offset o of the Neighbourhood. A sample is absent
//     when c+o falls outside the example (EdgeClamp) or wraps around the
//     borders (EdgeWrap).
//   - Tiles are content-hashed with xxhash over per-sample maphash digests;
//     cells landing in the same hash bucket are compared structurally before
//     sharing an ID, so a collision never merges two distinct patterns.
//   - IDs are dense in 0..Len()-1 and assigned in row-major order of first
//     appearance, independently of the hash seed.
//
// The Catalog keeps both mapping directions: example cell → ID (IDAt) and
// ID → cells carrying it (Representative, Members).
//
// Complexity:
//
//   - Extract: O(W×H×|N|) time, O(W×H + U×|N|) memory, U = unique tiles.
//   - All Catalog queries: O(1), except Members which copies O(frequency).
//
// Errors:
//
//   - ErrEmptyExample: nil or zero-cell example grid.
//   - ErrOptionViolation: an Option received an unsupported value.
//   - ErrUnknownEdgeMode: ParseEdgeMode received an unsupported name.
//   - grid.ErrEmptyNeighbourhood / grid.ErrDuplicateOffset: invalid Neighbourhood.
package tile
