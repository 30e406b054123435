package wfc

import (
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tilewave/adjacency"
	"github.com/katalvlaran/tilewave/collapse"
	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/materialize"
	"github.com/katalvlaran/tilewave/tile"
	"github.com/katalvlaran/tilewave/wave"
)

// Re-exported sentinels, so callers need only this package for errors.Is.
var (
	ErrEmptyExample    = tile.ErrEmptyExample
	ErrInvalidOffset   = adjacency.ErrInvalidOffset
	ErrContradiction   = collapse.ErrContradiction
	ErrBudgetExhausted = collapse.ErrBudgetExhausted
	ErrInvalidSize     = grid.ErrInvalidSize
	ErrNoTiles         = wave.ErrNoTiles
	ErrNotConverged    = materialize.ErrNotConverged

	// ErrNilRand indicates Generate received a nil random source.
	ErrNilRand = errors.New("wfc: random source is nil")

	// ErrOptionViolation indicates that an Option received an invalid value.
	ErrOptionViolation = errors.New("wfc: invalid option value")
)

// DefaultRetries is the retry count used by the command line tool.
const DefaultRetries = 40

// Options configures Generate.
type Options struct {
	// Retries is the number of extra attempts after a contradiction. Default 0.
	Retries int

	// MaxWaves caps the waves of each attempt; 0 means unlimited.
	MaxWaves int

	// Edge selects how the example borders are sampled. Default tile.EdgeClamp.
	Edge tile.EdgeMode

	// Unobserved selects the policy for offsets never observed in the example.
	Unobserved adjacency.Unobserved

	// Keying selects what the compatibility relation is learned between.
	// Default adjacency.ByValue.
	Keying adjacency.Keying

	// Logger receives run events. Default discards everything.
	Logger *slog.Logger

	// Observer receives engine events of every attempt.
	Observer collapse.Observer

	// TracerProvider supplies the span tracer. Default otel.GetTracerProvider().
	TracerProvider trace.TracerProvider

	projection any // materialize.Projection[T], checked by Generate
	err        error
}

// Option mutates Options. Invalid values are recorded and reported by Generate.
type Option func(*Options)

// DefaultOptions returns a single-attempt, silent configuration.
func DefaultOptions() Options {
	return Options{
		Edge:       tile.EdgeClamp,
		Unobserved: adjacency.Permissive,
		Keying:     adjacency.ByValue,
		Logger:     slog.New(slog.DiscardHandler),
	}
}

func (o *Options) fail(detail string) {
	if o.err == nil {
		o.err = fmt.Errorf("%w: %s", ErrOptionViolation, detail)
	}
}

// WithRetries allows n extra attempts after a contradiction. n >= 0.
func WithRetries(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.fail(fmt.Sprintf("retries %d", n))
			return
		}
		o.Retries = n
	}
}

// WithMaxWaves caps the waves of each attempt. n >= 0; 0 disables the cap.
func WithMaxWaves(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.fail(fmt.Sprintf("max waves %d", n))
			return
		}
		o.MaxWaves = n
	}
}

// WithEdgeMode selects how the example borders are sampled.
func WithEdgeMode(m tile.EdgeMode) Option {
	return func(o *Options) {
		if m != tile.EdgeClamp && m != tile.EdgeWrap {
			o.fail(fmt.Sprintf("edge mode %d", int(m)))
			return
		}
		o.Edge = m
	}
}

// WithUnobserved selects the policy for offsets never observed in the example.
func WithUnobserved(u adjacency.Unobserved) Option {
	return func(o *Options) {
		if u != adjacency.Permissive && u != adjacency.Strict {
			o.fail(fmt.Sprintf("unobserved policy %d", int(u)))
			return
		}
		o.Unobserved = u
	}
}

// WithKeying selects what the compatibility relation is learned between.
func WithKeying(k adjacency.Keying) Option {
	return func(o *Options) {
		if k != adjacency.ByValue && k != adjacency.ByTile {
			o.fail(fmt.Sprintf("keying %d", int(k)))
			return
		}
		o.Keying = k
	}
}

// WithLogger routes run events to l. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver installs an engine observer for every attempt.
func WithObserver(obs collapse.Observer) Option {
	return func(o *Options) { o.Observer = obs }
}

// WithTracerProvider routes the run span to tp. A nil provider is ignored.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Options) {
		if tp != nil {
			o.TracerProvider = tp
		}
	}
}

// WithProjection supplies the value projection used when the neighbourhood
// has no self offset. Its element type must match the example.
func WithProjection[T comparable](p materialize.Projection[T]) Option {
	return func(o *Options) { o.projection = p }
}
