// Package adjacency compiles the per-offset compatibility relation between
// canonical tiles.
//
// Two keyings decide what the example observations are attached to:
//
//   - ByValue (default): for every offset o and every example value v, the
//     values seen at cell+o over all cells holding v are recorded. Tile t
//     admits every tile whose value was seen at o from t's value. A tile's
//     value is the value of its representative example cell, which is also
//     what materialization emits without a projection. Border tiles of a
//     clamped example therefore inherit the context of interior cells with
//     the same value, and a 2×2 checkerboard reproduces a checkerboard.
//   - ByTile: for every offset o and every tile t, the set is the union of
//     the tile IDs observed at member+o over all example cells carrying t.
//
// Sets are dense bitsets over 0..NumTiles-1.
//
// The relation is directional: the set at o and the set at -o are computed
// independently and are never symmetrised.
//
// A key that never had a neighbour at o is handled by the Unobserved policy:
//
//   - Permissive (default): no constraint, the set is the full universe.
//   - Strict: nothing is compatible, the set is empty.
//
// Complexity: Build runs in O(W×H×|N|) plus O(|N|×U²/64) for the bitsets;
// Compatible is O(U/64) because it clones, CompatibleAt is O(1).
//
// Errors:
//
//   - ErrNilCatalog: Build received a nil catalog.
//   - ErrInvalidOffset: an offset outside the neighbourhood was queried.
//   - ErrUnknownTile: a tile ID outside 0..NumTiles-1 was queried.
//   - ErrOptionViolation, ErrUnknownPolicy, ErrUnknownKeying: invalid options
//     or names.
package adjacency
