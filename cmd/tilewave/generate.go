package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tilewave/config"
	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/materialize"
	"github.com/katalvlaran/tilewave/metrics"
	"github.com/katalvlaran/tilewave/regions"
	"github.com/katalvlaran/tilewave/render"
	"github.com/katalvlaran/tilewave/textgrid"
	"github.com/katalvlaran/tilewave/wfc"
)

// ErrDisconnected indicates that no attempt produced a connected walkable area.
var ErrDisconnected = errors.New("walkable area is split into several regions")

// pcgStream is the second PCG word; run seeds only vary the first.
const pcgStream = 0x9e3779b97f4a7c15

type generateFlags struct {
	configPath  string
	metricsFile string
	watch       bool
	color       string
	run         config.Run
}

// overrides copies each changed flag from the flag set into a loaded config.
var overrides = []struct {
	flag  string
	apply func(dst *config.Run, src config.Run)
}{
	{"example", func(d *config.Run, s config.Run) { d.Example = s.Example }},
	{"neighbourhood", func(d *config.Run, s config.Run) { d.Neighbourhood = s.Neighbourhood }},
	{"width", func(d *config.Run, s config.Run) { d.Width = s.Width }},
	{"height", func(d *config.Run, s config.Run) { d.Height = s.Height }},
	{"seed", func(d *config.Run, s config.Run) { d.Seed = s.Seed }},
	{"retries", func(d *config.Run, s config.Run) { d.Retries = s.Retries }},
	{"max-waves", func(d *config.Run, s config.Run) { d.MaxWaves = s.MaxWaves }},
	{"edge", func(d *config.Run, s config.Run) { d.Edge = s.Edge }},
	{"unobserved", func(d *config.Run, s config.Run) { d.Unobserved = s.Unobserved }},
	{"keying", func(d *config.Run, s config.Run) { d.Keying = s.Keying }},
	{"count", func(d *config.Run, s config.Run) { d.Count = s.Count }},
	{"parallel", func(d *config.Run, s config.Run) { d.Parallel = s.Parallel }},
	{"out", func(d *config.Run, s config.Run) { d.Output = s.Output }},
	{"walkable", func(d *config.Run, s config.Run) { d.Walkable = s.Walkable }},
	{"require-connected", func(d *config.Run, s config.Run) { d.RequireConnected = s.RequireConnected }},
	{"dig", func(d *config.Run, s config.Run) { d.Dig = s.Dig }},
}

func newGenerateCmd(a *app) *cobra.Command {
	f := &generateFlags{}
	d := config.Default()
	cmd := &cobra.Command{
		Use:   "generate [example]",
		Short: "Generate maps from an example map",
		Long: `Generate one or more maps whose local patterns all occur in the example.

Flags override values from --config. Run i of a batch uses seed+i, so batches
are reproducible regardless of --parallel.

Examples:
  tilewave generate maps/cave.txt --width 64 --height 32
  tilewave generate maps/cave.txt --edge wrap --count 4 --parallel 4 -o out/cave.txt
  tilewave generate --config run.yaml --metrics-file run.prom
  tilewave generate maps/cave.txt --walkable . --require-connected --watch
  tilewave generate maps/cave.txt --walkable . --require-connected --dig`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := render.ParseColorMode(f.color)
			if err != nil {
				return err
			}
			load := func() (config.Run, error) { return f.resolve(cmd, args) }
			if f.watch {
				return a.watch(cmd, load, f.configPath, mode, f.metricsFile)
			}
			run, err := load()
			if err != nil {
				return err
			}

			return a.generate(cmd, run, mode, f.metricsFile)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "YAML run configuration")
	fl.StringVarP(&f.run.Example, "example", "e", "", "example map (text, one row per line)")
	fl.StringVarP(&f.run.Neighbourhood, "neighbourhood", "n", d.Neighbourhood, "cross, square, cross+self or square+self")
	fl.IntVar(&f.run.Width, "width", d.Width, "output width")
	fl.IntVar(&f.run.Height, "height", d.Height, "output height")
	fl.Uint64Var(&f.run.Seed, "seed", d.Seed, "random seed")
	fl.IntVar(&f.run.Retries, "retries", d.Retries, "extra attempts after a contradiction")
	fl.IntVar(&f.run.MaxWaves, "max-waves", d.MaxWaves, "wave budget per attempt (0 = unlimited)")
	fl.StringVar(&f.run.Edge, "edge", d.Edge, "example border sampling: clamp or wrap")
	fl.StringVar(&f.run.Unobserved, "unobserved", d.Unobserved, "unobserved offsets: permissive or strict")
	fl.StringVar(&f.run.Keying, "keying", d.Keying, "learn adjacency between symbol values or tiles: value or tile")
	fl.IntVar(&f.run.Count, "count", d.Count, "number of maps to generate")
	fl.IntVar(&f.run.Parallel, "parallel", d.Parallel, "maps generated concurrently")
	fl.StringVarP(&f.run.Output, "out", "o", "", "output file; batches insert the map index before the extension")
	fl.StringVar(&f.run.Walkable, "walkable", "", "symbols forming walkable regions")
	fl.BoolVar(&f.run.RequireConnected, "require-connected", false, "reject maps whose walkable area is split")
	fl.BoolVar(&f.run.Dig, "dig", false, "with --require-connected, dig tunnels instead of regenerating")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus engine metrics to this file")
	fl.BoolVar(&f.watch, "watch", false, "regenerate whenever the example or config changes")
	fl.StringVar(&f.color, "color", "auto", "colour output: auto, always or never")

	return cmd
}

// resolve merges the config file, the flags and the positional example.
func (f *generateFlags) resolve(cmd *cobra.Command, args []string) (config.Run, error) {
	run := f.run
	if f.configPath != "" {
		base, err := config.Read(f.configPath)
		if err != nil {
			return config.Run{}, err
		}
		for _, o := range overrides {
			if cmd.Flags().Changed(o.flag) {
				o.apply(&base, f.run)
			}
		}
		run = base
	}
	if len(args) == 1 {
		run.Example = args[0]
	}
	if err := run.Validate(); err != nil {
		return config.Run{}, err
	}

	return run, nil
}

// generate produces run.Count maps and writes them out.
func (a *app) generate(cmd *cobra.Command, run config.Run, mode render.ColorMode, metricsFile string) error {
	example, err := textgrid.ReadFile(run.Example)
	if err != nil {
		return err
	}
	n, err := run.ResolvedNeighbourhood()
	if err != nil {
		return err
	}
	opts, err := run.Options()
	if err != nil {
		return err
	}
	opts = append(opts, wfc.WithLogger(a.log), wfc.WithTracerProvider(a.tp))

	var reg *prometheus.Registry
	if metricsFile != "" {
		reg = prometheus.NewRegistry()
		obs, err := metrics.New(reg)
		if err != nil {
			return err
		}
		opts = append(opts, wfc.WithObserver(obs))
	}

	maps := make([]*grid.Grid[rune], run.Count)
	failed := make([]*materialize.Report[rune], run.Count)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(run.Parallel)
	for i := range run.Count {
		g.Go(func() error {
			out, rep, err := a.generateOne(ctx, example, n, run, i, opts)
			if err != nil {
				failed[i] = rep
				return fmt.Errorf("map %d: %w", i, err)
			}
			maps[i] = out
			return nil
		})
	}
	err = g.Wait()

	if reg != nil {
		if werr := prometheus.WriteToTextfile(metricsFile, reg); werr != nil {
			err = errors.Join(err, fmt.Errorf("write metrics: %w", werr))
		}
	}
	if err != nil {
		r := render.New(cmd.ErrOrStderr(), render.Palette(run.PaletteRunes()), mode)
		for i, rep := range failed {
			if rep != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "map %d, last attempt:\n%s", i, r.Report(rep))
			}
		}
		return err
	}

	return writeMaps(cmd.OutOrStdout(), run, maps, mode)
}

// generateOne runs map i of a batch. With RequireConnected, a map whose
// walkable area is split is regenerated under the next seed, at most
// run.Retries times, or joined in place when run.Dig is set.
func (a *app) generateOne(ctx context.Context, example *grid.Grid[rune], n grid.Neighbourhood,
	run config.Run, i int, opts []wfc.Option) (*grid.Grid[rune], *materialize.Report[rune], error) {
	for k := 0; ; k++ {
		seed := run.Seed + uint64(i) + uint64(k)*uint64(run.Count)
		res, err := wfc.Generate(ctx, example, n, run.Width, run.Height, rand.New(rand.NewPCG(seed, pcgStream)), opts...)
		if err != nil {
			if res != nil {
				return nil, res.Report, err
			}
			return nil, nil, err
		}
		if !run.RequireConnected || res.Output.Len() == 0 {
			return res.Output, nil, nil
		}

		walkable := run.WalkableRunes()
		m, err := regions.New(res.Output, grid.Cross(), regions.Kept(walkable...))
		if err != nil {
			return nil, nil, err
		}
		sum := m.Summarize()
		if sum.Connected() {
			return res.Output, nil, nil
		}
		if run.Dig {
			dug, err := regions.Connect(res.Output, grid.Cross(), regions.Kept(walkable...), walkable[0])
			if err != nil {
				return nil, nil, err
			}
			a.log.Info("tunnels dug",
				slog.String("run_id", res.RunID),
				slog.Int("map", i),
				slog.Uint64("seed", seed),
				slog.Int("regions", sum.Components),
				slog.Int("cells", len(dug)),
			)
			return res.Output, nil, nil
		}
		a.log.Info("map rejected",
			slog.String("run_id", res.RunID),
			slog.Int("map", i),
			slog.Uint64("seed", seed),
			slog.Int("regions", sum.Components),
			slog.Int("largest", sum.Largest()),
		)
		if k >= run.Retries {
			return nil, nil, fmt.Errorf("%w: %d regions after %d attempts", ErrDisconnected, sum.Components, k+1)
		}
	}
}

// writeMaps prints maps to w, or writes them to run.Output without colour.
func writeMaps(w io.Writer, run config.Run, maps []*grid.Grid[rune], mode render.ColorMode) error {
	if run.Output == "" {
		r := render.New(w, render.Palette(run.PaletteRunes()), mode)
		for i, m := range maps {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, r.Grid(m)); err != nil {
				return err
			}
		}
		return nil
	}

	for i, m := range maps {
		path := run.Output
		if len(maps) > 1 {
			path = numbered(path, i)
		}
		if err := writeFile(path, m); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(path string, g *grid.Grid[rune]) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = textgrid.Write(f, g); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// numbered inserts "-i" before the extension: out/map.txt → out/map-3.txt.
func numbered(path string, i int) string {
	ext := filepath.Ext(path)

	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i, ext)
}
