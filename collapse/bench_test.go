package collapse_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/tilewave/adjacency"
	"github.com/katalvlaran/tilewave/collapse"
	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/tile"
	"github.com/katalvlaran/tilewave/wave"
)

// BenchmarkRun measures whole runs over the dungeon example at growing sizes.
func BenchmarkRun(b *testing.B) {
	ex, _ := grid.FromRows(dungeon)
	cat, _ := tile.Extract(ex, grid.Cross(), tile.WithEdgeMode(tile.EdgeWrap))
	model, _ := adjacency.Build(cat)

	for _, size := range []int{16, 32, 64} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				w, _ := wave.New(size, size, model.NumTiles())
				e, _ := collapse.New(model, w, seeded(uint64(i)))
				_, _ = e.Run()
			}
		})
	}
}
