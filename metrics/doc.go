// Package metrics exports collapse engine events as Prometheus metrics.
//
// Observer implements collapse.Observer; install it through
// wfc.WithObserver. All metrics live under the "tilewave_engine" prefix:
//
//   - collapses_total: cells fixed by observation.
//   - propagations_total{outcome}: neighbour reductions by outcome.
//   - contradictions_total: attempts that ended empty.
//   - runs_total{state}: finished attempts by terminal state.
//   - waves_per_run: histogram of waves per finished attempt.
//   - pruned_total: candidates rejected by look-ahead screening.
//
// An Observer may be shared by concurrent runs.
package metrics
