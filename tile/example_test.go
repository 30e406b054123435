package tile_test

import (
	"fmt"

	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/tile"
)

// ExampleExtract shows how a toroidal checkerboard collapses to two tiles.
func ExampleExtract() {
	ex, _ := grid.FromRows([][]int{{0, 1}, {1, 0}})
	cat, err := tile.Extract(ex, grid.Cross().WithSelf(), tile.WithEdgeMode(tile.EdgeWrap))
	if err != nil {
		fmt.Println(err)
		return
	}
	for id := tile.ID(0); int(id) < cat.Len(); id++ {
		v, _ := cat.SelfValue(id)
		fmt.Printf("tile %d: value=%d cells=%v\n", id, v, cat.Members(id))
	}
	// Output:
	// tile 0: value=0 cells=[(0,0) (1,1)]
	// tile 1: value=1 cells=[(1,0) (0,1)]
}
