package collapse

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/tile"
	"github.com/katalvlaran/tilewave/wave"
)

// Sentinel errors for the collapse engine.
var (
	// ErrNilModel indicates New received a nil adjacency model.
	ErrNilModel = errors.New("collapse: adjacency model is nil")

	// ErrNilWave indicates New received a nil wave.
	ErrNilWave = errors.New("collapse: wave is nil")

	// ErrNilRand indicates New received a nil random source.
	ErrNilRand = errors.New("collapse: random source is nil")

	// ErrTileMismatch indicates model and wave use different tile universes.
	ErrTileMismatch = errors.New("collapse: model and wave tile counts differ")

	// ErrOptionViolation indicates that an Option received an invalid value.
	ErrOptionViolation = errors.New("collapse: invalid option value")

	// ErrContradiction indicates that some cell ran out of admissible tiles.
	ErrContradiction = errors.New("collapse: contradiction")

	// ErrBudgetExhausted indicates the wave budget ran out before convergence.
	ErrBudgetExhausted = errors.New("collapse: wave budget exhausted")
)

// Rand is the uniform source consumed by the engine.
type Rand = wave.Rand

// State is the engine's position in its state machine.
type State int

const (
	// Running means more waves are needed.
	Running State = iota

	// Converged means every cell holds exactly one tile.
	Converged

	// Contradicted means some cell holds no tile.
	Contradicted
)

// String returns a lower-case name of the state.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case Contradicted:
		return "contradicted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats counts the work done by an engine.
type Stats struct {
	Waves        int // cells collapsed by choice
	Propagations int // cells popped from the propagation stack
	Reductions   int // neighbour sets that shrank during propagation
	Pruned       int // candidates rejected during screening
}

// ContradictionError reports the cells that ran empty, in the order they did,
// together with a copy of the wave at that moment.
type ContradictionError struct {
	Cells    []grid.Coord
	Wave     int // 1-based wave in which the contradiction occurred
	Snapshot *wave.Snapshot
}

// Error implements error.
func (e *ContradictionError) Error() string {
	parts := make([]string, len(e.Cells))
	for i, c := range e.Cells {
		parts[i] = c.String()
	}

	return fmt.Sprintf("%s at %s during wave %d", ErrContradiction, strings.Join(parts, " "), e.Wave)
}

// Unwrap exposes ErrContradiction to errors.Is.
func (e *ContradictionError) Unwrap() error { return ErrContradiction }

// Observer receives engine events. Implementations must be cheap; they run
// inside the propagation loop.
type Observer interface {
	OnCollapse(cell grid.Coord, t tile.ID)
	OnPropagate(cell grid.Coord, out wave.Outcome)
	OnContradiction(cells []grid.Coord)
	OnFinish(state State, stats Stats)
}

// NopObserver ignores every event. Embed it to implement a subset of Observer.
type NopObserver struct{}

func (NopObserver) OnCollapse(grid.Coord, tile.ID)       {}
func (NopObserver) OnPropagate(grid.Coord, wave.Outcome) {}
func (NopObserver) OnContradiction([]grid.Coord)         {}
func (NopObserver) OnFinish(State, Stats)                {}

// Options configures an Engine.
type Options struct {
	// Context is checked once per wave. Default context.Background().
	Context context.Context

	// Observer receives engine events. Default NopObserver.
	Observer Observer

	// MaxWaves caps the number of waves; 0 means unlimited.
	MaxWaves int

	err error
}

// Option mutates Options. Invalid values are recorded and reported by New.
type Option func(*Options)

// DefaultOptions returns an unlimited, silent configuration.
func DefaultOptions() Options {
	return Options{
		Context:  context.Background(),
		Observer: NopObserver{},
	}
}

// WithContext sets the cancellation context.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx == nil {
			o.err = fmt.Errorf("%w: nil context", ErrOptionViolation)
			return
		}
		o.Context = ctx
	}
}

// WithObserver installs an event observer. A nil observer is ignored.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		if obs != nil {
			o.Observer = obs
		}
	}
}

// WithMaxWaves caps the number of waves. n must be non-negative; 0 disables the cap.
func WithMaxWaves(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: max waves %d", ErrOptionViolation, n)
			return
		}
		o.MaxWaves = n
	}
}
