// Package wfc is the one-call entry point of the tile-map generator.
//
// Generate runs the whole pipeline:
//
//	example ─► tile.Extract ─► adjacency.Build ─► wave.New ─► collapse.Run ─► materialize
//
// Preconditions (empty example, negative size, invalid neighbourhood, bad
// options) are reported before any collapse attempt. A contradiction is a
// normal outcome: the returned error wraps *collapse.ContradictionError and
// the Result still carries the diagnostic Report.
//
// The engine never backtracks. WithRetries re-runs the collapse from scratch
// on contradiction, drawing from the same random stream, so a given seed
// still yields one deterministic result.
//
// Every run is tagged with a random run id, logged through the configured
// slog.Logger (silent by default) and traced as an OpenTelemetry span named
// "tilewave.Generate" (global tracer provider unless WithTracerProvider).
//
// Example:
//
//	ex, _ := grid.FromRows([][]rune{[]rune("#.#"), []rune("...")})
//	res, err := wfc.Generate(ctx, ex, grid.Cross(), 32, 16,
//		rand.New(rand.NewPCG(seed, seed)), wfc.WithRetries(10))
//	if errors.Is(err, wfc.ErrContradiction) {
//		fmt.Println(res.Report.Contradicted())
//	}
package wfc
