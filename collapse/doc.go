// Package collapse drives a wave to a fixpoint: repeatedly pick the
// lowest-entropy open cell, settle it on one admissible tile, and propagate
// the consequences until nothing shrinks or some cell runs empty.
//
// One Step is one wave:
//
//  1. If the wave has converged, the engine becomes Converged.
//  2. Pick the open cell c with the lowest entropy (ties uniform).
//  3. Draw candidates from c at random. A candidate is kept only if, for every
//     offset whose target lies in the output, the target's set meets the
//     candidate's compatibility set. Rejected candidates are removed from c
//     for good. If c runs empty the engine becomes Contradicted.
//  4. Collapse c to the accepted candidate.
//  5. Propagate over an explicit stack: for every popped cell and offset, the
//     neighbour is reduced to the union of compatibilities of the popped
//     cell's tiles; a neighbour that shrank is pushed once.
//
// The engine never backtracks. Contradicted is a terminal state reported as
// a *ContradictionError, and the wave stays inspectable.
//
// Complexity: each Step collapses one cell, and every reduction strictly
// shrinks a set, so a Run performs at most C steps and C×U reductions.
//
// Errors:
//
//   - ErrNilModel, ErrNilWave, ErrNilRand: missing collaborators.
//   - ErrTileMismatch: model and wave disagree on the tile universe.
//   - ErrOptionViolation: an Option received an invalid value.
//   - ErrContradiction: wrapped by *ContradictionError.
//   - ErrBudgetExhausted: the WithMaxWaves budget ran out.
//   - context errors from WithContext, checked once per wave.
package collapse
