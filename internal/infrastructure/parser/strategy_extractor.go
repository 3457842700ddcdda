package parser

import (
	"context"
	"fmt"
	"log/slog"

	"ListingDashboard/internal/domain"
	"ListingDashboard/internal/metrics"
	"ListingDashboard/internal/ports"
	"ListingDashboard/internal/scanner"
)

// StrategyExtractor implements ports.Extractor via the profile registered for the configured site.
type StrategyExtractor struct {
	registry *scanner.Registry
	profile  string
	metrics  *metrics.Pipeline
	logger   *slog.Logger
}

var _ ports.Extractor = (*StrategyExtractor)(nil)

// NewStrategyExtractor wires the registry with the config-selected profile.
func NewStrategyExtractor(reg *scanner.Registry, profile string, m *metrics.Pipeline, log *slog.Logger) *StrategyExtractor {
	return &StrategyExtractor{
		registry: reg,
		profile:  profile,
		metrics:  m,
		logger:   log,
	}
}

// Extract resolves the profile and runs it over the markup.
func (s *StrategyExtractor) Extract(ctx context.Context, markup string) ([]domain.ProductRecord, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("extractor registry is not configured")
	}

	strategy, err := s.registry.Resolve(s.profile)
	if err != nil {
		return nil, err
	}

	s.debug("extract", "profile", strategy.Name(), "bytes", len(markup))
	records, err := strategy.Extract(ctx, markup)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", strategy.Name(), err)
	}

	for i, rec := range records {
		missing := rec.MissingFields()
		if len(missing) > 0 {
			s.debug("record has missing fields", "index", i, "fields", missing)
		}
		if s.metrics != nil {
			for _, field := range missing {
				s.metrics.FieldsMissing.WithLabelValues(field).Inc()
			}
		}
	}
	if s.metrics != nil {
		s.metrics.BlocksMatched.Add(float64(len(records)))
	}

	s.debug("extraction done", "profile", strategy.Name(), "records", len(records))
	return records, nil
}

func (s *StrategyExtractor) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
