package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/aretw0/nutshell/pkg/domain"
	"github.com/aretw0/nutshell/pkg/table"
)

// Metrics counts compilation work. It implements table.Observer.
type Metrics struct {
	registry *prometheus.Registry

	sections    prometheus.Counter
	transitions prometheus.Counter
	branches    prometheus.Counter
	lines       prometheus.Counter
	duplicates  prometheus.Counter
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	errors      *prometheus.CounterVec
	sectionSize prometheus.Histogram
}

var _ table.Observer = (*Metrics)(nil)

// New creates the collectors on a private registry.
func New() *Metrics {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: "nutshell", Name: name, Help: help})
	}
	m := &Metrics{
		registry:    prometheus.NewRegistry(),
		sections:    counter("sections_total", "Table sections compiled"),
		transitions: counter("transitions_total", "Abstract transitions read"),
		branches:    counter("branches_total", "Concrete transitions produced by expansion"),
		lines:       counter("lines_total", "Transition lines emitted"),
		duplicates:  counter("duplicates_total", "Transition lines dropped as duplicates"),
		cacheHits:   counter("orbit_cache_hits_total", "Orbit cache hits"),
		cacheMisses: counter("orbit_cache_misses_total", "Orbit cache misses"),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nutshell",
				Name:      "errors_total",
				Help:      "Compilation errors by kind",
			},
			[]string{"kind"},
		),
		sectionSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nutshell",
			Name:      "section_lines",
			Help:      "Transition lines per compiled section",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	m.registry.MustRegister(
		m.sections, m.transitions, m.branches, m.lines, m.duplicates,
		m.cacheHits, m.cacheMisses, m.errors, m.sectionSize,
	)
	return m
}

// Registry exposes the collectors, e.g. for promhttp.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveSection records the statistics of one compiled section.
func (m *Metrics) ObserveSection(s table.Stats) {
	m.sections.Inc()
	m.transitions.Add(float64(s.Transitions))
	m.branches.Add(float64(s.Branches))
	m.lines.Add(float64(s.Lines))
	m.duplicates.Add(float64(s.Duplicates))
	m.cacheHits.Add(float64(s.Cache.Hits))
	m.cacheMisses.Add(float64(s.Cache.Misses))
	m.sectionSize.Observe(float64(s.Lines))
}

// ObserveError records one failure.
func (m *Metrics) ObserveError(k domain.Kind) {
	label := "Unknown"
	if k != 0 {
		label = k.String()
	}
	m.errors.WithLabelValues(label).Inc()
}

// WriteText writes every metric in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
