// Package tilewave is an example-driven tile-map generator: it learns the
// local patterns of a small example grid and synthesises larger grids in
// which every neighbourhood also occurs in the example (wave function
// collapse, simple tiled model).
//
// What is inside?
//
//	grid/        bounded 2D buffer, coordinates, offsets and neighbourhoods
//	tile/        pattern extraction and canonical tile IDs
//	adjacency/   per-offset compatibility sets between tiles
//	wave/        per-cell superpositions and the entropy hierarchy
//	collapse/    observe / propagate engine with contradiction reporting
//	materialize/ collapsed wave → output grid, per-cell diagnostics
//	wfc/         one-call facade with retries, logging and tracing
//	regions/     connectivity analysis of generated maps
//	textgrid/    text map reader and writer
//	config/      YAML run configuration
//	metrics/     Prometheus collector for engine events
//	render/      coloured terminal output
//	cmd/tilewave command line tool
//
// Quick example:
//
//	example, _ := textgrid.ReadFile("maps/cave.txt")
//	res, err := wfc.Generate(ctx, example, grid.Cross(), 64, 32,
//		rand.New(rand.NewPCG(7, 0)), wfc.WithRetries(wfc.DefaultRetries))
//	if err != nil {
//		// errors.Is(err, wfc.ErrContradiction): res.Report shows where it failed
//	}
//	fmt.Print(textgrid.String(res.Output))
//
// Every run is reproducible from its random source: the engine draws all
// choices from the Rand passed to Generate.
//
//	go get github.com/katalvlaran/tilewave
package tilewave
