// Package metrics defines the Prometheus counters recorded during a
// glossary run and exports them in the node_exporter textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "glossarytips"

// Metrics holds all Prometheus collectors for a run.
type Metrics struct {
	registry *prometheus.Registry

	PagesScanned         prometheus.Counter
	PagesUpdated         prometheus.Counter
	PagesSkipped         *prometheus.CounterVec
	PageFailures         *prometheus.CounterVec
	AnnotationsAdded     prometheus.Counter
	AnnotationsRefreshed prometheus.Counter
	GlossaryTerms        prometheus.Gauge
}

// New creates the collectors and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PagesScanned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pages_scanned_total",
				Help:      "Course pages examined for glossary terms.",
			},
		),
		PagesUpdated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pages_updated_total",
				Help:      "Course pages whose body changed and was saved.",
			},
		),
		PagesSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pages_skipped_total",
				Help:      "Course pages not examined, by reason (glossary_page, empty_body).",
			},
			[]string{"reason"},
		),
		PageFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "page_failures_total",
				Help:      "Per-page failures by stage (fetch, enrich, update).",
			},
			[]string{"stage"},
		),
		AnnotationsAdded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "annotations_added_total",
				Help:      "Tooltip annotations inserted.",
			},
		),
		AnnotationsRefreshed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "annotations_refreshed_total",
				Help:      "Existing annotations whose tooltip was replaced.",
			},
		),
		GlossaryTerms: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "glossary_terms",
				Help:      "Number of terms in the glossary used for the run.",
			},
		),
	}

	m.registry.MustRegister(
		m.PagesScanned,
		m.PagesUpdated,
		m.PagesSkipped,
		m.PageFailures,
		m.AnnotationsAdded,
		m.AnnotationsRefreshed,
		m.GlossaryTerms,
	)
	return m
}

// Registry returns the registry holding the run collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current values to path atomically, for pickup by
// the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
