package wfc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/katalvlaran/tilewave/adjacency"
	"github.com/katalvlaran/tilewave/collapse"
	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/materialize"
	"github.com/katalvlaran/tilewave/tile"
	"github.com/katalvlaran/tilewave/wave"
)

// Result describes one Generate call.
type Result[T comparable] struct {
	// RunID identifies the call in logs and traces.
	RunID string

	// Output is the generated grid; nil unless State is Converged.
	Output *grid.Grid[T]

	// Report classifies every cell of the last attempt.
	Report *materialize.Report[T]

	// State and Stats describe the last attempt.
	State collapse.State
	Stats collapse.Stats

	// Attempts is the number of collapse runs performed (1 + retries used).
	Attempts int

	// Catalog and Model are the compiled example, shared by all attempts.
	Catalog *tile.Catalog[T]
	Model   *adjacency.Model
}

// Tiles returns the number of distinct tiles in the example.
func (r *Result[T]) Tiles() int { return r.Catalog.Len() }

// Generate synthesises a width×height grid whose local neighbourhoods match
// those of example under n.
//
// On contradiction the error wraps *collapse.ContradictionError and the
// Result carries the diagnostic Report of the last attempt. Precondition
// failures return a nil Result.
//
// Complexity: O(W×H×|N|) to compile the example, then per attempt
// O(C×U×|N|×U/64) in the worst case, C = width×height.
func Generate[T comparable](
	ctx context.Context,
	example *grid.Grid[T],
	n grid.Neighbourhood,
	width, height int,
	r collapse.Rand,
	opts ...Option,
) (*Result[T], error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	var mopts []materialize.Option[T]
	if o.projection != nil {
		p, ok := o.projection.(materialize.Projection[T])
		if !ok {
			return nil, fmt.Errorf("%w: projection %T does not produce %T", ErrOptionViolation, o.projection, *new(T))
		}
		mopts = append(mopts, materialize.WithProjection(p))
	}
	if r == nil {
		return nil, ErrNilRand
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: output %dx%d", ErrInvalidSize, width, height)
	}

	cat, err := tile.Extract(example, n, tile.WithEdgeMode(o.Edge))
	if err != nil {
		return nil, err
	}
	model, err := adjacency.Build(cat, adjacency.WithUnobserved(o.Unobserved), adjacency.WithKeying(o.Keying))
	if err != nil {
		return nil, err
	}

	res := &Result[T]{RunID: uuid.NewString(), Catalog: cat, Model: model}
	log := o.Logger.With(slog.String("run_id", res.RunID))
	ctx, span := startGenerateSpan(ctx, o.TracerProvider, res.RunID, width, height, cat.Len())
	defer span.End()

	log.Info("generation started",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("tiles", cat.Len()),
		slog.Int("edges", model.Edges()),
		slog.String("edge_mode", o.Edge.String()),
		slog.String("unobserved", o.Unobserved.String()),
		slog.String("keying", o.Keying.String()),
		slog.Int("retries", o.Retries),
	)

	copts := []collapse.Option{
		collapse.WithContext(ctx),
		collapse.WithMaxWaves(o.MaxWaves),
		collapse.WithObserver(o.Observer),
	}
	for attempt := 1; ; attempt++ {
		res.Attempts = attempt
		runErr := res.attempt(model, width, height, r, copts, mopts)
		switch {
		case runErr == nil:
			log.Info("generation converged",
				slog.Int("attempt", attempt),
				slog.Int("waves", res.Stats.Waves),
				slog.Int("reductions", res.Stats.Reductions),
			)
			setGenerateSpanResult(span, res.State, res.Attempts, res.Stats, nil)

			return res, nil

		case errors.Is(runErr, collapse.ErrContradiction) && attempt <= o.Retries:
			log.Debug("attempt contradicted, retrying",
				slog.Int("attempt", attempt),
				slog.Any("error", runErr),
			)

		default:
			log.Warn("generation failed",
				slog.Int("attempt", attempt),
				slog.String("state", res.State.String()),
				slog.Any("error", runErr),
			)
			setGenerateSpanResult(span, res.State, res.Attempts, res.Stats, runErr)
			if res.Report == nil {
				return nil, runErr
			}

			return res, runErr
		}
	}
}

// attempt runs one collapse over a fresh wave and fills State, Stats, Report
// and, on convergence, Output.
func (res *Result[T]) attempt(
	model *adjacency.Model,
	width, height int,
	r collapse.Rand,
	copts []collapse.Option,
	mopts []materialize.Option[T],
) error {
	w, err := wave.New(width, height, model.NumTiles())
	if err != nil {
		return err
	}
	e, err := collapse.New(model, w, r, copts...)
	if err != nil {
		return err
	}
	state, runErr := e.Run()
	res.State, res.Stats, res.Output = state, e.Stats(), nil

	report, err := materialize.Diagnose(res.Catalog, w, mopts...)
	if err != nil {
		return err
	}
	res.Report = report
	if runErr != nil {
		return runErr
	}
	res.Output, err = report.Values()

	return err
}
