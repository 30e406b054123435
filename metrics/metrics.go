package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/tilewave/collapse"
	"github.com/katalvlaran/tilewave/grid"
	"github.com/katalvlaran/tilewave/tile"
	"github.com/katalvlaran/tilewave/wave"
)

const (
	namespace = "tilewave"
	subsystem = "engine"
)

// Observer records engine events into Prometheus collectors.
type Observer struct {
	collapses      prometheus.Counter
	propagations   *prometheus.CounterVec
	contradictions prometheus.Counter
	runs           *prometheus.CounterVec
	waves          prometheus.Histogram
	pruned         prometheus.Counter
}

var _ collapse.Observer = (*Observer)(nil)

// New creates an Observer and registers it with reg.
// A nil reg leaves it unregistered.
func New(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		collapses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "collapses_total",
			Help:      "Cells fixed to a single tile by observation",
		}),
		propagations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "propagations_total",
			Help:      "Neighbour reductions performed during propagation, by outcome",
		}, []string{"outcome"}),
		contradictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "contradictions_total",
			Help:      "Attempts that left a cell without admissible tiles",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Finished collapse attempts by terminal state",
		}, []string{"state"}),
		waves: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "waves_per_run",
			Help:      "Waves performed by each finished attempt",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "pruned_total",
			Help:      "Candidate tiles rejected by look-ahead screening",
		}),
	}
	if reg != nil {
		if err := reg.Register(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

func (o *Observer) collectors() []prometheus.Collector {
	return []prometheus.Collector{o.collapses, o.propagations, o.contradictions, o.runs, o.waves, o.pruned}
}

// Describe implements prometheus.Collector.
func (o *Observer) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range o.collectors() {
		c.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (o *Observer) Collect(ch chan<- prometheus.Metric) {
	for _, c := range o.collectors() {
		c.Collect(ch)
	}
}

// OnCollapse implements collapse.Observer.
func (o *Observer) OnCollapse(grid.Coord, tile.ID) { o.collapses.Inc() }

// OnPropagate implements collapse.Observer.
func (o *Observer) OnPropagate(_ grid.Coord, out wave.Outcome) {
	o.propagations.WithLabelValues(out.String()).Inc()
}

// OnContradiction implements collapse.Observer.
func (o *Observer) OnContradiction([]grid.Coord) { o.contradictions.Inc() }

// OnFinish implements collapse.Observer.
func (o *Observer) OnFinish(s collapse.State, st collapse.Stats) {
	o.runs.WithLabelValues(s.String()).Inc()
	o.waves.Observe(float64(st.Waves))
	o.pruned.Add(float64(st.Pruned))
}
