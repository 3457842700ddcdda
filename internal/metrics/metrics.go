package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline groups the counters a single run reports.
// Each Pipeline owns its registry so tests and repeated runs never collide.
type Pipeline struct {
	registry *prometheus.Registry

	AcquiredMarkup *prometheus.CounterVec
	BlocksMatched  prometheus.Counter
	FieldsMissing  *prometheus.CounterVec
	RowsWritten    prometheus.Counter
	RowsRepaired   prometheus.Counter
	RowsRendered   prometheus.Counter
	StageDuration  *prometheus.HistogramVec
}

// New registers all pipeline collectors on a fresh registry.
func New() *Pipeline {
	reg := prometheus.NewRegistry()
	p := &Pipeline{
		registry: reg,
		AcquiredMarkup: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "listing_markup_acquired_total",
				Help: "Markup acquisitions by source (cache or network)",
			},
			[]string{"source"},
		),
		BlocksMatched: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "listing_blocks_matched_total",
				Help: "Listing blocks found in the markup",
			},
		),
		FieldsMissing: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "listing_fields_missing_total",
				Help: "Optional record fields absent from their listing block",
			},
			[]string{"field"},
		),
		RowsWritten: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "listing_csv_rows_written_total",
				Help: "Record rows written to the flat file",
			},
		),
		RowsRepaired: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "listing_csv_rows_repaired_total",
				Help: "Rows whose text had to be repaired before writing",
			},
		),
		RowsRendered: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "listing_dashboard_rows_rendered_total",
				Help: "Rows embedded into the dashboard document",
			},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "listing_stage_duration_seconds",
				Help:    "Time taken by each pipeline stage",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
	}

	reg.MustRegister(
		p.AcquiredMarkup,
		p.BlocksMatched,
		p.FieldsMissing,
		p.RowsWritten,
		p.RowsRepaired,
		p.RowsRendered,
		p.StageDuration,
	)
	return p
}

// Registry exposes the underlying gatherer.
func (p *Pipeline) Registry() *prometheus.Registry {
	return p.registry
}

// WriteTextfile dumps the registry in text exposition format for a textfile collector.
func (p *Pipeline) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, p.registry)
}
