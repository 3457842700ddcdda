package render

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"ListingDashboard/internal/metrics"
	"ListingDashboard/internal/ports"
)

const defaultTitle = "Product Analytics Dashboard"

//go:embed templates/dashboard.html.tmpl
var dashboardSource string

var dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardSource))

var columnLabels = map[Column]string{
	ColumnTitle:     "Brand (A-Z)",
	ColumnPrice:     "Price (Low to High)",
	ColumnRating:    "Rating (Low to High)",
	ColumnSponsored: "Sponsored First",
}

type columnOption struct {
	Key   Column
	Label string
}

type pageData struct {
	Title   string
	Count   int
	Columns []columnOption
	Rows    []Row
	Orders  map[Column]map[Direction][]int
}

// Dashboard renders a self-contained sortable HTML page from the flat file.
type Dashboard struct {
	store   ports.RecordStore
	title   string
	metrics *metrics.Pipeline
	logger  *slog.Logger
}

var _ ports.Renderer = (*Dashboard)(nil)

// NewDashboard reads records through store when rendering.
func NewDashboard(store ports.RecordStore, title string, m *metrics.Pipeline, log *slog.Logger) *Dashboard {
	if title == "" {
		title = defaultTitle
	}
	return &Dashboard{store: store, title: title, metrics: m, logger: log}
}

// Render reads csvPath back into records and replaces htmlPath with the dashboard.
func (d *Dashboard) Render(ctx context.Context, csvPath, htmlPath string) error {
	if d.store == nil {
		return fmt.Errorf("record store is not configured")
	}

	records, err := d.store.Read(ctx, csvPath)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	var buf bytes.Buffer
	table := NewTable(records)
	if err := d.WriteTable(&buf, table); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(htmlPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(htmlPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", htmlPath, err)
	}

	if d.metrics != nil {
		d.metrics.RowsRendered.Add(float64(table.Len()))
	}
	if d.logger != nil {
		d.logger.Info("dashboard written", "path", htmlPath, "rows", table.Len())
	}
	return nil
}

// WriteTable executes the dashboard template for table in its current order.
func (d *Dashboard) WriteTable(w io.Writer, table *Table) error {
	options := make([]columnOption, 0, len(Columns))
	for _, col := range Columns {
		options = append(options, columnOption{Key: col, Label: columnLabels[col]})
	}

	data := pageData{
		Title:   d.title,
		Count:   table.Len(),
		Columns: options,
		Rows:    table.Rows(),
		Orders:  table.Permutations(),
	}
	if err := dashboardTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("execute dashboard template: %w", err)
	}
	return nil
}
