package observability

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/waypoint/pkg/automata"
	"github.com/aretw0/waypoint/pkg/urlmatch"
	"github.com/prometheus/client_golang/prometheus"
)

// Match results used as label values.
const (
	ResultFound   = "found"
	ResultPartial = "partial"
	ResultMiss    = "miss"
)

// Metrics holds the collectors.
type Metrics struct {
	registry prometheus.Gatherer

	Matches      *prometheus.CounterVec
	MatchDepth   prometheus.Histogram
	Rounds       prometheus.Counter
	ActiveStates prometheus.Gauge
	Entered      *prometheus.CounterVec
	Returned     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// When reg is nil a private registry is used.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		Matches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waypoint_url_matches_total",
				Help: "Total number of URL matches by result",
			},
			[]string{"result"},
		),
		MatchDepth: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "waypoint_url_match_depth",
				Help:    "Number of URL tokens consumed per match",
				Buckets: prometheus.LinearBuckets(1, 2, 8),
			},
		),
		Rounds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "waypoint_machine_rounds_total",
				Help: "Total number of completed machine rounds",
			},
		),
		ActiveStates: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "waypoint_machine_active_states",
				Help: "Active running instances after the last round",
			},
		),
		Entered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waypoint_machine_state_entries_total",
				Help: "Total number of entered states",
			},
			[]string{"state"},
		),
		Returned: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waypoint_machine_returns_total",
				Help: "Total number of returned instances",
			},
			[]string{"state"},
		),
	}

	for _, c := range []prometheus.Collector{m.Matches, m.MatchDepth, m.Rounds, m.ActiveStates, m.Entered, m.Returned} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.registry = g
	}
	return m, nil
}

// MatchHooks returns matcher hooks feeding the match collectors.
func (m *Metrics) MatchHooks() urlmatch.Hooks {
	return urlmatch.Hooks{
		OnMatch: func(e urlmatch.MatchEvent) {
			switch {
			case e.Found:
				m.Matches.WithLabelValues(ResultFound).Inc()
			case e.Captures > 0:
				m.Matches.WithLabelValues(ResultPartial).Inc()
			default:
				m.Matches.WithLabelValues(ResultMiss).Inc()
			}
			m.MatchDepth.Observe(float64(e.Depth))
		},
	}
}

// MachineHooks returns machine hooks feeding the machine collectors.
func MachineHooks[M any](m *Metrics) automata.Hooks[M] {
	return automata.Hooks[M]{
		OnEnter: func(_ context.Context, r automata.Running[M]) {
			m.Entered.WithLabelValues(r.Definition().Name().String()).Inc()
		},
		OnReturn: func(_ context.Context, r automata.Running[M]) {
			m.Returned.WithLabelValues(r.Definition().Name().String()).Inc()
		},
		OnRound: func(_ context.Context, e automata.RoundEvent) {
			m.Rounds.Inc()
			m.ActiveStates.Set(float64(e.Active))
		},
	}
}

// Sample is one gathered series value.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Snapshot gathers counter and gauge values, sorted by name and labels.
// It returns nil when the registry cannot be gathered.
func (m *Metrics) Snapshot() ([]Sample, error) {
	if m.registry == nil {
		return nil, nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	var out []Sample
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			var v float64
			switch {
			case metric.GetCounter() != nil:
				v = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				v = metric.GetGauge().GetValue()
			default:
				continue
			}
			labels := ""
			for i, lp := range metric.GetLabel() {
				if i > 0 {
					labels += ","
				}
				labels += lp.GetName() + "=" + lp.GetValue()
			}
			out = append(out, Sample{Name: mf.GetName(), Labels: labels, Value: v})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}
