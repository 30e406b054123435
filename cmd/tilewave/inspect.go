package main

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tilewave/adjacency"
	"github.com/katalvlaran/tilewave/config"
	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/regions"
	"github.com/katalvlaran/tilewave/textgrid"
	"github.com/katalvlaran/tilewave/tile"
)

type inspectFlags struct {
	neighbourhood string
	edge          string
	unobserved    string
	keying        string
	walkable      string
	top           int
}

func newInspectCmd(_ *app) *cobra.Command {
	f := &inspectFlags{}
	d := config.Default()
	cmd := &cobra.Command{
		Use:   "inspect <example>",
		Short: "Show the tiles, constraints and regions of an example map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.inspect(cmd, args[0])
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.neighbourhood, "neighbourhood", "n", d.Neighbourhood, "cross, square, cross+self or square+self")
	fl.StringVar(&f.edge, "edge", d.Edge, "example border sampling: clamp or wrap")
	fl.StringVar(&f.unobserved, "unobserved", d.Unobserved, "unobserved offsets: permissive or strict")
	fl.StringVar(&f.keying, "keying", d.Keying, "learn adjacency between symbol values or tiles: value or tile")
	fl.StringVar(&f.walkable, "walkable", "", "symbols forming walkable regions")
	fl.IntVar(&f.top, "top", 10, "number of most frequent tiles to list")

	return cmd
}

func (f *inspectFlags) inspect(cmd *cobra.Command, path string) error {
	n, err := grid.ByName(f.neighbourhood)
	if err != nil {
		return err
	}
	edge, err := tile.ParseEdgeMode(f.edge)
	if err != nil {
		return err
	}
	policy, err := adjacency.ParseUnobserved(f.unobserved)
	if err != nil {
		return err
	}
	keying, err := adjacency.ParseKeying(f.keying)
	if err != nil {
		return err
	}
	example, err := textgrid.ReadFile(path)
	if err != nil {
		return err
	}
	cat, err := tile.Extract(example, n, tile.WithEdgeMode(edge))
	if err != nil {
		return err
	}
	model, err := adjacency.Build(cat, adjacency.WithUnobserved(policy), adjacency.WithKeying(keying))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "example  %dx%d, %d cells\n", example.Width(), example.Height(), example.Len())
	fmt.Fprintf(out, "tiles    %d (neighbourhood %s, edge %s)\n", cat.Len(), f.neighbourhood, edge)
	fmt.Fprintf(out, "edges    %d compatible pairs (unobserved %s, keying %s)\n", model.Edges(), policy, keying)

	ids := make([]tile.ID, cat.Len())
	for i := range ids {
		ids[i] = tile.ID(i)
	}
	slices.SortStableFunc(ids, func(a, b tile.ID) int {
		return cmp.Compare(cat.Frequency(b), cat.Frequency(a))
	})
	if f.top >= 0 && f.top < len(ids) {
		ids = ids[:f.top]
	}
	fmt.Fprintf(out, "%6s %6s  %s\n", "tile", "count", "first at")
	for _, id := range ids {
		at, _ := cat.Representative(id)
		fmt.Fprintf(out, "%6d %6d  %v\n", id, cat.Frequency(id), at)
	}

	if f.walkable == "" {
		return nil
	}
	m, err := regions.New(example, grid.Cross(), regions.Kept([]rune(f.walkable)...))
	if err != nil {
		return err
	}
	sum := m.Summarize()
	fmt.Fprintf(out, "regions  %d walkable, largest %d cells, coverage %.1f%%\n",
		sum.Components, sum.Largest(), 100*sum.Coverage())

	return nil
}
