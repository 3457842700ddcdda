package app

import (
	"context"
	"log/slog"

	"ListingDashboard/internal/config"
	"ListingDashboard/internal/infrastructure/fetch"
	"ListingDashboard/internal/infrastructure/parser"
	"ListingDashboard/internal/infrastructure/render"
	"ListingDashboard/internal/infrastructure/storage"
	"ListingDashboard/internal/logging"
	"ListingDashboard/internal/metrics"
	"ListingDashboard/internal/scanner"
	"ListingDashboard/internal/usecase"
)

// Application wires configs to the pipeline use case.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	metrics  *metrics.Pipeline
	logger   *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	m := metrics.New()

	registry := scanner.NewRegistry()
	registry.Register(parser.NewAmazonExtractor(cfg.Source.BaseURL))

	acquirer := fetch.NewCacheFirst(fetch.Options{
		UserAgent:      cfg.Source.UserAgent,
		AcceptLanguage: cfg.Source.AcceptLanguage,
		Timeout:        cfg.Source.Timeout,
	}, baseLogger.With("component", "acquirer"))

	extractor := parser.NewStrategyExtractor(registry, cfg.Source.Profile, m, baseLogger.With("component", "extractor"))
	store := storage.NewCSVRepository(cfg.Output.CSVBOM, m, baseLogger.With("component", "storage"))
	renderer := render.NewDashboard(store, cfg.Output.Title, m, baseLogger.With("component", "renderer"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Acquirer:  acquirer,
		Extractor: extractor,
		Store:     store,
		Renderer:  renderer,
		Metrics:   m,
		Logger:    baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline, metrics: m, logger: baseLogger}
}

// Run performs a single pipeline execution.
func (a *Application) Run(ctx context.Context) (usecase.RunReport, error) {
	report, err := a.pipeline.Run(ctx, a.cfg.Source.URL, a.paths())
	a.flushMetrics()
	return report, err
}

// Render rebuilds the dashboard from the configured flat file only.
func (a *Application) Render(ctx context.Context) error {
	err := a.pipeline.RenderOnly(ctx, a.paths())
	a.flushMetrics()
	return err
}

func (a *Application) paths() usecase.Paths {
	return usecase.Paths{
		Cache: a.cfg.Paths.Cache,
		CSV:   a.cfg.Paths.CSV,
		HTML:  a.cfg.Paths.HTML,
	}
}

func (a *Application) flushMetrics() {
	if err := a.metrics.WriteTextfile(a.cfg.Paths.Metrics); err != nil {
		a.logger.Warn("metrics textfile not written", "path", a.cfg.Paths.Metrics, "error", err)
	}
}
