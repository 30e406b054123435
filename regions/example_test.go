package regions_test

import (
	"fmt"

	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/regions"
)

// ExampleMap_Components lists the floor regions of a small cave.
func ExampleMap_Components() {
	cave, _ := grid.FromRows([][]rune{
		[]rune("#..#."),
		[]rune("..#.."),
		[]rune(".#..#"),
	})
	m, _ := regions.New(cave, grid.Cross(), regions.Kept('.'))

	comps := m.Components()
	fmt.Println("components:", len(comps))
	for i, comp := range comps {
		fmt.Printf("component %d:", i)
		for _, idx := range comp {
			c, _ := m.Coordinate(idx)
			fmt.Printf(" %v", c)
		}
		fmt.Println()
	}

	// Output:
	// components: 2
	// component 0: (1,0) (1,1) (2,0) (0,1) (0,2)
	// component 1: (4,0) (4,1) (3,1) (3,2) (2,2)
}

// ExampleMap_Bridge shows the cells to dig so the two regions meet.
func ExampleMap_Bridge() {
	cave, _ := grid.FromRows([][]rune{
		[]rune("..#.."),
		[]rune("..#.."),
	})
	m, _ := regions.New(cave, grid.Cross(), regions.Kept('.'))

	path, cost, _ := m.Bridge(0, 1)
	fmt.Printf("dig %d cell(s):", cost)
	for _, idx := range path {
		c, _ := m.Coordinate(idx)
		fmt.Printf(" %v", c)
	}
	fmt.Println()

	// Output:
	// dig 1 cell(s): (1,0) (2,0) (3,0)
}

// ExampleConnect joins three islands by digging through the water.
func ExampleConnect() {
	isle, _ := grid.FromRows([][]rune{
		[]rune("..~.."),
		[]rune("~~~~~"),
		[]rune("..~.."),
	})
	dug, _ := regions.Connect(isle, grid.Cross(), regions.Kept('.'), '.')
	fmt.Println("dug:", dug)
	for _, row := range isle.Rows() {
		fmt.Println(string(row))
	}

	// Output:
	// dug: [(0,1) (2,0) (2,2)]
	// .....
	// .~~~~
	// .....
}
