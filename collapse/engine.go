package collapse

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/tilewave/adjacency"
	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/tile"
	"github.com/katalvlaran/tilewave/wave"
)

// Engine runs the collapse-and-propagate loop over one wave.
// It is single-use and not safe for concurrent use.
type Engine struct {
	model *adjacency.Model
	wave  *wave.Wave
	rng   Rand
	opts  Options

	nbhd  grid.Neighbourhood
	state State
	stats Stats
	err   error

	stack   []int          // cells whose neighbours need re-checking
	queued  *bitset.BitSet // cells currently on stack
	support *bitset.BitSet // scratch union buffer
	cands   []uint         // scratch candidate list
}

// New binds an engine to a model, a fresh wave and a random source.
func New(model *adjacency.Model, w *wave.Wave, r Rand, opts ...Option) (*Engine, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	switch {
	case model == nil:
		return nil, ErrNilModel
	case w == nil:
		return nil, ErrNilWave
	case r == nil:
		return nil, ErrNilRand
	case model.NumTiles() != w.NumTiles():
		return nil, fmt.Errorf("%w: model %d, wave %d", ErrTileMismatch, model.NumTiles(), w.NumTiles())
	}

	return &Engine{
		model:   model,
		wave:    w,
		rng:     r,
		opts:    o,
		nbhd:    model.Neighbourhood(),
		state:   Running,
		queued:  bitset.New(uint(w.Len())),
		support: bitset.New(uint(model.NumTiles())),
	}, nil
}

// State returns the current state.
func (e *Engine) State() State { return e.state }

// Stats returns the work counters so far.
func (e *Engine) Stats() Stats { return e.stats }

// Wave returns the wave being collapsed, for inspection.
func (e *Engine) Wave() *wave.Wave { return e.wave }

// Run steps until the engine leaves Running or a step fails.
func (e *Engine) Run() (State, error) {
	for {
		state, err := e.Step()
		if err != nil || state != Running {
			return state, err
		}
	}
}

// Step performs one wave. Once the engine is terminal, Step keeps returning
// the terminal state and error.
//
// Budget exhaustion and context cancellation leave the engine Running; the
// caller may extend the budget by creating a new engine over the same wave.
func (e *Engine) Step() (State, error) {
	if e.state != Running {
		return e.state, e.err
	}
	if err := e.opts.Context.Err(); err != nil {
		return e.state, err
	}
	if e.wave.IsConverged() {
		return e.finish(Converged, nil)
	}
	if e.opts.MaxWaves > 0 && e.stats.Waves >= e.opts.MaxWaves {
		return e.state, fmt.Errorf("%w: %d waves", ErrBudgetExhausted, e.opts.MaxWaves)
	}

	cell, _ := e.wave.PickLowest(e.rng)
	e.stats.Waves++

	chosen, ok, err := e.screen(cell)
	if err != nil {
		return e.state, err
	}
	if !ok {
		return e.contradict()
	}
	if _, err = e.wave.CollapseTo(cell, int(chosen)); err != nil {
		return e.state, err
	}
	at, _ := e.wave.Coord(cell)
	e.opts.Observer.OnCollapse(at, tile.ID(chosen))

	ok, err = e.propagate(cell)
	if err != nil {
		return e.state, err
	}
	if !ok {
		return e.contradict()
	}

	return e.state, nil
}

// screen draws candidates of cell until one is consistent with every
// in-bounds neighbour. Rejected candidates are removed from the cell.
// ok is false when the cell ran empty.
func (e *Engine) screen(cell int) (chosen uint, ok bool, err error) {
	set := e.wave.Set(cell)
	e.cands = e.cands[:0]
	for t, more := set.NextSet(0); more; t, more = set.NextSet(t + 1) {
		e.cands = append(e.cands, t)
	}
	at, _ := e.wave.Coord(cell)

	for len(e.cands) > 0 {
		j := e.rng.IntN(len(e.cands))
		t := e.cands[j]
		if e.consistent(at, t) {
			return t, true, nil
		}
		e.stats.Pruned++
		if _, err = e.wave.Remove(cell, int(t)); err != nil {
			return 0, false, err
		}
		last := len(e.cands) - 1
		e.cands[j] = e.cands[last]
		e.cands = e.cands[:last]
	}

	return 0, false, nil
}

// consistent reports whether tile t at cell leaves every in-bounds
// neighbour with at least one admissible tile.
func (e *Engine) consistent(at grid.Coord, t uint) bool {
	for k, off := range e.nbhd {
		n, ok := e.wave.Index(at.Add(off))
		if !ok {
			continue
		}
		if e.wave.Set(n).IntersectionCardinality(e.model.CompatibleAt(k, t)) == 0 {
			return false
		}
	}

	return true
}

// propagate drains the work stack seeded with start until a fixpoint.
// ok is false when some cell ran empty.
func (e *Engine) propagate(start int) (ok bool, err error) {
	e.push(start)
	for len(e.stack) > 0 {
		last := len(e.stack) - 1
		cell := e.stack[last]
		e.stack = e.stack[:last]
		e.queued.Clear(uint(cell))
		e.stats.Propagations++

		at, _ := e.wave.Coord(cell)
		for k, off := range e.nbhd {
			n, inBounds := e.wave.Index(at.Add(off))
			if !inBounds || n == cell {
				continue
			}
			e.model.Support(k, e.wave.Set(cell), e.support)
			out, err := e.wave.Reduce(n, e.support)
			if err != nil {
				return false, err
			}
			if out == wave.Unchanged {
				continue
			}
			nAt, _ := e.wave.Coord(n)
			e.opts.Observer.OnPropagate(nAt, out)
			if out == wave.Contradiction {
				e.drain()
				return false, nil
			}
			e.stats.Reductions++
			e.push(n)
		}
	}

	return true, nil
}

func (e *Engine) push(cell int) {
	if e.queued.Test(uint(cell)) {
		return
	}
	e.queued.Set(uint(cell))
	e.stack = append(e.stack, cell)
}

func (e *Engine) drain() {
	e.stack = e.stack[:0]
	e.queued.ClearAll()
}

func (e *Engine) contradict() (State, error) {
	idx := e.wave.Contradicted()
	cells := make([]grid.Coord, len(idx))
	for i, c := range idx {
		cells[i], _ = e.wave.Coord(c)
	}
	e.opts.Observer.OnContradiction(cells)

	return e.finish(Contradicted, &ContradictionError{
		Cells:    cells,
		Wave:     e.stats.Waves,
		Snapshot: e.wave.Snapshot(),
	})
}

func (e *Engine) finish(s State, err error) (State, error) {
	e.state, e.err = s, err
	e.opts.Observer.OnFinish(s, e.stats)

	return s, err
}
