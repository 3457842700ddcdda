package scanner

import (
	"context"
	"fmt"
	"sort"

	"ListingDashboard/internal/domain"
)

// Extractor captures a single site profile (amazon, etc.) that knows how its
// search-results markup is laid out.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, markup string) ([]domain.ProductRecord, error)
}

// Registry keeps a mapping from profile names to their extractors.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: map[string]Extractor{}}
}

// Register adds or replaces an extractor.
func (r *Registry) Register(extractor Extractor) {
	if r.extractors == nil {
		r.extractors = map[string]Extractor{}
	}
	r.extractors[extractor.Name()] = extractor
}

// Resolve returns an extractor by profile name or an error if it is absent.
func (r *Registry) Resolve(name string) (Extractor, error) {
	if extractor, ok := r.extractors[name]; ok {
		return extractor, nil
	}
	return nil, fmt.Errorf("extractor profile %q is not registered (known: %v)", name, r.Names())
}

// Names lists registered profiles in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.extractors))
	for name := range r.extractors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
