package ports

import (
	"context"

	"ListingDashboard/internal/domain"
)

// MarkupSource says which branch of the acquirer served the markup.
type MarkupSource string

const (
	SourceCache   MarkupSource = "cache"
	SourceNetwork MarkupSource = "network"
)

// Acquirer returns raw page markup, preferring a cache file over the network.
type Acquirer interface {
	Acquire(ctx context.Context, target, cachePath string) (string, MarkupSource, error)
}

// Extractor turns page markup into one record per listing block.
type Extractor interface {
	Extract(ctx context.Context, markup string) ([]domain.ProductRecord, error)
}

// RecordStore writes records to a flat file and reads them back.
type RecordStore interface {
	Write(ctx context.Context, records []domain.ProductRecord, path string) (int, error)
	Read(ctx context.Context, path string) ([]domain.ProductRecord, error)
}

// Renderer reads a flat file back and builds the static dashboard document.
type Renderer interface {
	Render(ctx context.Context, csvPath, htmlPath string) error
}
