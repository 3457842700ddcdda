package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ListingDashboard/internal/domain"
	"ListingDashboard/internal/metrics"
	"ListingDashboard/internal/ports"
)

// Paths names the artifacts passed between stages.
type Paths struct {
	Cache string
	CSV   string
	HTML  string
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Acquirer  ports.Acquirer
	Extractor ports.Extractor
	Store     ports.RecordStore
	Renderer  ports.Renderer
	Metrics   *metrics.Pipeline
	Logger    *slog.Logger
}

// RunReport summarizes a finished run.
type RunReport struct {
	Source      ports.MarkupSource
	Records     []domain.ProductRecord
	RowsWritten int
	CSVPath     string
	HTMLPath    string
}

// Pipeline implements the acquire, extract, persist, render workflow.
type Pipeline struct {
	acquirer  ports.Acquirer
	extractor ports.Extractor
	store     ports.RecordStore
	renderer  ports.Renderer
	metrics   *metrics.Pipeline
	logger    *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		acquirer:  deps.Acquirer,
		extractor: deps.Extractor,
		store:     deps.Store,
		renderer:  deps.Renderer,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}
}

// Run executes every stage in order. Each stage finishes its artifact before
// the next starts; the first error stops the run.
func (p *Pipeline) Run(ctx context.Context, target string, paths Paths) (RunReport, error) {
	report := RunReport{CSVPath: paths.CSV, HTMLPath: paths.HTML}
	if p.acquirer == nil || p.extractor == nil || p.store == nil || p.renderer == nil {
		return report, fmt.Errorf("pipeline is not fully configured")
	}

	var markup string
	err := p.stage("acquire", func() error {
		var err error
		markup, report.Source, err = p.acquirer.Acquire(ctx, target, paths.Cache)
		return err
	})
	if err != nil {
		return report, fmt.Errorf("acquire: %w", err)
	}
	if p.metrics != nil {
		p.metrics.AcquiredMarkup.WithLabelValues(string(report.Source)).Inc()
	}
	p.info("markup acquired", "source", report.Source, "bytes", len(markup))

	err = p.stage("extract", func() error {
		var err error
		report.Records, err = p.extractor.Extract(ctx, markup)
		return err
	})
	if err != nil {
		return report, fmt.Errorf("extract: %w", err)
	}
	p.info("records extracted", "count", len(report.Records))

	err = p.stage("persist", func() error {
		var err error
		report.RowsWritten, err = p.store.Write(ctx, report.Records, paths.CSV)
		return err
	})
	if err != nil {
		return report, fmt.Errorf("persist: %w", err)
	}

	if err := p.render(ctx, paths); err != nil {
		return report, err
	}

	return report, nil
}

// RenderOnly rebuilds the dashboard from an existing flat file.
func (p *Pipeline) RenderOnly(ctx context.Context, paths Paths) error {
	if p.renderer == nil {
		return fmt.Errorf("renderer is not configured")
	}
	return p.render(ctx, paths)
}

func (p *Pipeline) render(ctx context.Context, paths Paths) error {
	err := p.stage("render", func() error {
		return p.renderer.Render(ctx, paths.CSV, paths.HTML)
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (p *Pipeline) stage(name string, fn func() error) error {
	started := time.Now()
	err := fn()
	elapsed := time.Since(started)

	if p.metrics != nil {
		p.metrics.StageDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	}
	if p.logger != nil {
		p.logger.Debug("stage finished", "stage", name, "duration", elapsed, "ok", err == nil)
	}
	return err
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}
