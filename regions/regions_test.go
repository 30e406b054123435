package regions

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/katalvlaran/tilewave/grid"
)

// mapOf builds a Map over an int grid where values ≥ 1 are kept.
func mapOf(t *testing.T, rows [][]int, n grid.Neighbourhood) *Map[int] {
	t.Helper()
	g, err := grid.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	m, err := New(g, n, func(v int) bool { return v >= 1 })
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	return m
}

// idx converts (x,y) to a row-major index for width w.
func idx(w, x, y int) int { return y*w + x }

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

func TestNew_Errors(t *testing.T) {
	empty, _ := grid.New[int](0, 0)
	if _, err := New(empty, grid.Cross(), Kept(1)); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("empty grid: got %v; want ErrEmptyGrid", err)
	}
	g, _ := grid.FromRows([][]int{{1}})
	if _, err := New(g, grid.Cross(), nil); !errors.Is(err, ErrNilPredicate) {
		t.Errorf("nil predicate: got %v; want ErrNilPredicate", err)
	}
	if _, err := New(g, grid.Neighbourhood{}, Kept(1)); !errors.Is(err, grid.ErrEmptyNeighbourhood) {
		t.Errorf("empty neighbourhood: got %v; want ErrEmptyNeighbourhood", err)
	}
}

//----------------------------------------------------------------------------//
// Components
//----------------------------------------------------------------------------//

// TestComponents_Cross tests a 4×3 grid with orthogonal connectivity.
//
//	0 1 1 0
//	1 1 0 0
//	0 0 1 1
//
// Expected: 2 regions of sizes 4 and 2.
func TestComponents_Cross(t *testing.T) {
	m := mapOf(t, [][]int{
		{0, 1, 1, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
	}, grid.Cross())

	comps := m.Components()
	if len(comps) != 2 {
		t.Fatalf("got %d components; want 2", len(comps))
	}
	sizes := []int{len(comps[0]), len(comps[1])}
	sort.Ints(sizes)
	if want := []int{2, 4}; !reflect.DeepEqual(sizes, want) {
		t.Errorf("component sizes = %v; want %v", sizes, want)
	}
}

// TestComponents_Square: diagonal hops join an X shape into one region,
// while the cross neighbourhood sees nine singletons.
func TestComponents_Square(t *testing.T) {
	rows := [][]int{
		{1, 0, 0, 0, 1},
		{0, 1, 0, 1, 0},
		{0, 0, 1, 0, 0},
		{0, 1, 0, 1, 0},
		{1, 0, 0, 0, 1},
	}
	if comps := mapOf(t, rows, grid.Square()).Components(); len(comps) != 1 || len(comps[0]) != 9 {
		t.Errorf("square: got %d components; want 1 of size 9", len(comps))
	}
	if comps := mapOf(t, rows, grid.Cross()).Components(); len(comps) != 9 {
		t.Errorf("cross: got %d components; want 9", len(comps))
	}
}

// TestComponents_SelfOffsetIgnored: the zero offset adds no edges.
func TestComponents_SelfOffsetIgnored(t *testing.T) {
	m := mapOf(t, [][]int{{1, 0, 1}}, grid.Cross().WithSelf())
	if comps := m.Components(); len(comps) != 2 {
		t.Errorf("got %d components; want 2", len(comps))
	}
}

//----------------------------------------------------------------------------//
// Bridge
//----------------------------------------------------------------------------//

// TestBridge_Line: [1,0,1] needs the middle cell converted.
func TestBridge_Line(t *testing.T) {
	m := mapOf(t, [][]int{{1, 0, 1}}, grid.Cross())
	path, cost, err := m.Bridge(0, 1)
	if err != nil {
		t.Fatalf("Bridge error: %v", err)
	}
	if cost != 1 {
		t.Errorf("cost = %d; want 1", cost)
	}
	if want := []int{0, 1, 2}; !reflect.DeepEqual(path, want) {
		t.Errorf("path = %v; want %v", path, want)
	}
}

// TestBridge_Row: three water cells between two land cells.
func TestBridge_Row(t *testing.T) {
	m := mapOf(t, [][]int{{1, 0, 0, 0, 1}}, grid.Cross())
	path, cost, err := m.Bridge(0, 1)
	if err != nil {
		t.Fatalf("Bridge error: %v", err)
	}
	if cost != 3 {
		t.Errorf("cost = %d; want 3", cost)
	}
	if len(path) != 5 {
		t.Errorf("path length = %d; want 5", len(path))
	}
}

// TestBridge_ThreeRegions: a top strip and two bottom corners, each one
// conversion away from its neighbour.
//
//	1 1 1
//	0 0 0
//	1 0 1
func TestBridge_ThreeRegions(t *testing.T) {
	m := mapOf(t, [][]int{
		{1, 1, 1},
		{0, 0, 0},
		{1, 0, 1},
	}, grid.Cross())
	comps := m.Components()
	if len(comps) != 3 {
		t.Fatalf("got %d components; want 3", len(comps))
	}
	_, cost, err := m.Bridge(1, 2)
	if err != nil {
		t.Fatalf("Bridge error: %v", err)
	}
	if cost != 1 {
		t.Errorf("cost = %d; want 1", cost)
	}
	path, cost, err := m.Bridge(0, 1)
	if err != nil {
		t.Fatalf("Bridge error: %v", err)
	}
	if cost != 1 || path[0] != idx(3, 0, 0) || path[len(path)-1] != idx(3, 0, 2) {
		t.Errorf("path = %v cost %d; want (0,0)->(0,2) at cost 1", path, cost)
	}
}

func TestBridge_InvalidIndices(t *testing.T) {
	m := mapOf(t, [][]int{{1, 0, 1}}, grid.Cross())
	if _, _, err := m.Bridge(-1, 1); err != ErrComponentIndex {
		t.Errorf("src=-1: got %v; want ErrComponentIndex", err)
	}
	if _, _, err := m.Bridge(0, 2); err != ErrComponentIndex {
		t.Errorf("dst=2: got %v; want ErrComponentIndex", err)
	}
}

// TestBridge_NoPath: with an offset set that never reaches the other side,
// no bridge exists.
func TestBridge_NoPath(t *testing.T) {
	m := mapOf(t, [][]int{{1, 0, 1}}, grid.Neighbourhood{{DY: 1}, {DY: -1}})
	if _, _, err := m.Bridge(0, 1); err != ErrNoPath {
		t.Errorf("got %v; want ErrNoPath", err)
	}
}

// TestBridge_ThroughOtherRegion: crossing a third region costs nothing.
//
//	1 0 1 0 1
func TestBridge_ThroughOtherRegion(t *testing.T) {
	m := mapOf(t, [][]int{{1, 0, 1, 0, 1}}, grid.Cross())
	path, cost, err := m.Bridge(0, 2)
	if err != nil {
		t.Fatalf("Bridge error: %v", err)
	}
	if cost != 2 {
		t.Errorf("cost = %d; want 2", cost)
	}
	if want := []int{0, 1, 2, 3, 4}; !reflect.DeepEqual(path, want) {
		t.Errorf("path = %v; want %v", path, want)
	}
}

//----------------------------------------------------------------------------//
// Connect
//----------------------------------------------------------------------------//

// TestConnect_ThreeRegions: two tunnels of one cell join the three regions
// of the ThreeRegions layout.
func TestConnect_ThreeRegions(t *testing.T) {
	g, _ := grid.FromRows([][]int{
		{1, 1, 1},
		{0, 0, 0},
		{1, 0, 1},
	})
	keep := func(v int) bool { return v >= 1 }
	dug, err := Connect(g, grid.Cross(), keep, 2)
	if err != nil {
		t.Fatalf("Connect error: %v", err)
	}
	if len(dug) != 2 {
		t.Fatalf("dug %v; want 2 cells", dug)
	}
	for _, c := range dug {
		if v, _ := g.Get(c); v != 2 {
			t.Errorf("cell %v = %d; want fill 2", c, v)
		}
	}
	m, _ := New(g, grid.Cross(), keep)
	if s := m.Summarize(); !s.Connected() || s.Kept != 7 {
		t.Errorf("after Connect: %+v; want one region of 7", s)
	}
}

// TestConnect_AlreadyConnected leaves the grid untouched.
func TestConnect_AlreadyConnected(t *testing.T) {
	g, _ := grid.FromRows([][]int{{1, 1, 0}, {0, 1, 0}})
	before := g.Rows()
	dug, err := Connect(g, grid.Square(), Kept(1), 1)
	if err != nil || dug != nil {
		t.Fatalf("Connect = %v, %v; want nil, nil", dug, err)
	}
	if !reflect.DeepEqual(g.Rows(), before) {
		t.Errorf("grid changed: %v", g.Rows())
	}
}

func TestConnect_Errors(t *testing.T) {
	g, _ := grid.FromRows([][]int{{1, 0, 1}})
	if _, err := Connect(g, grid.Cross(), Kept(1), 0); !errors.Is(err, ErrFillNotKept) {
		t.Errorf("fill 0: got %v; want ErrFillNotKept", err)
	}
	if _, err := Connect(g, grid.Neighbourhood{{DX: 1}}, Kept(1), 1); !errors.Is(err, ErrAsymmetric) {
		t.Errorf("one-way offsets: got %v; want ErrAsymmetric", err)
	}
	if _, err := Connect(g, grid.Neighbourhood{{DY: 1}, {DY: -1}}, Kept(1), 1); !errors.Is(err, ErrNoPath) {
		t.Errorf("vertical only: got %v; want ErrNoPath", err)
	}
	if _, err := Connect(g, grid.Cross(), nil, 1); !errors.Is(err, ErrNilPredicate) {
		t.Errorf("nil predicate: got %v; want ErrNilPredicate", err)
	}
}

//----------------------------------------------------------------------------//
// Summary
//----------------------------------------------------------------------------//

func TestSummarize(t *testing.T) {
	m := mapOf(t, [][]int{
		{0, 1, 1, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
	}, grid.Cross())
	s := m.Summarize()
	want := Summary{Cells: 12, Kept: 6, Components: 2, Sizes: []int{4, 2}}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("Summarize = %+v; want %+v", s, want)
	}
	if s.Connected() {
		t.Error("two regions reported as connected")
	}
	if s.Largest() != 4 {
		t.Errorf("Largest = %d; want 4", s.Largest())
	}
	if s.Coverage() != 0.5 {
		t.Errorf("Coverage = %v; want 0.5", s.Coverage())
	}

	none := mapOf(t, [][]int{{0, 0}}, grid.Cross()).Summarize()
	if !none.Connected() || none.Largest() != 0 {
		t.Errorf("empty summary = %+v", none)
	}
}

func TestKept(t *testing.T) {
	keep := Kept('.', '+')
	for r, want := range map[rune]bool{'.': true, '+': true, '#': false} {
		if keep(r) != want {
			t.Errorf("Kept(%q) = %v; want %v", r, !want, want)
		}
	}
}
