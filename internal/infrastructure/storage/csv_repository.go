package storage

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"ListingDashboard/internal/domain"
	"ListingDashboard/internal/metrics"
	"ListingDashboard/internal/ports"
)

const utf8BOM = "\uFEFF"

// ErrSchema reports a flat file whose header or row shape does not match ProductRecord.
var ErrSchema = errors.New("unexpected csv schema")

// CSVRepository persists records into a comma-delimited UTF-8 file.
type CSVRepository struct {
	withBOM bool
	metrics *metrics.Pipeline
	logger  *slog.Logger
}

var _ ports.RecordStore = (*CSVRepository)(nil)

// NewCSVRepository builds a store; withBOM prefixes files with a UTF-8 byte order mark for spreadsheet tools.
func NewCSVRepository(withBOM bool, m *metrics.Pipeline, log *slog.Logger) *CSVRepository {
	return &CSVRepository{withBOM: withBOM, metrics: m, logger: log}
}

// Write replaces path with the header row followed by one row per record.
func (r *CSVRepository) Write(ctx context.Context, records []domain.ProductRecord, path string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}

	written, err := r.encode(file, records)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close %s: %w", path, closeErr)
	}
	if err != nil {
		return written, err
	}

	r.info("csv written", "path", path, "rows", written)
	return written, nil
}

func (r *CSVRepository) encode(w io.Writer, records []domain.ProductRecord) (int, error) {
	buffered := bufio.NewWriter(w)
	if r.withBOM {
		if _, err := buffered.WriteString(utf8BOM); err != nil {
			return 0, fmt.Errorf("write bom: %w", err)
		}
	}

	writer := csv.NewWriter(buffered)
	if err := writer.Write(domain.Header()); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	written := 0
	for i, rec := range records {
		row, repaired := sanitizeRow(rec.Row())
		if repaired {
			r.warn("repaired invalid utf-8 in record", "index", i)
			if r.metrics != nil {
				r.metrics.RowsRepaired.Inc()
			}
		}
		if err := writer.Write(row); err != nil {
			return written, fmt.Errorf("write row %d: %w", i, err)
		}
		written++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return written, fmt.Errorf("flush csv: %w", err)
	}
	if err := buffered.Flush(); err != nil {
		return written, fmt.Errorf("flush file: %w", err)
	}

	if r.metrics != nil {
		r.metrics.RowsWritten.Add(float64(written))
	}
	return written, nil
}

// Read loads records back from a file produced by Write.
func (r *CSVRepository) Read(ctx context.Context, path string) ([]domain.ProductRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	raw = bytes.TrimPrefix(raw, []byte(utf8BOM))

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1

	head, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s is empty", ErrSchema, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(head); err != nil {
		return nil, err
	}

	var records []domain.ProductRecord
	for line := 2; ; line++ {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		rec, err := domain.RecordFromRow(cells)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrSchema, line, err)
		}
		records = append(records, rec)
	}

	r.debug("csv read", "path", path, "rows", len(records))
	return records, nil
}

func checkHeader(head []string) error {
	want := domain.Header()
	if len(head) != len(want) {
		return fmt.Errorf("%w: header has %d columns, want %d", ErrSchema, len(head), len(want))
	}
	for i := range want {
		if strings.TrimSpace(head[i]) != want[i] {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrSchema, i+1, head[i], want[i])
		}
	}
	return nil
}

func sanitizeRow(row []string) ([]string, bool) {
	repaired := false
	for i, cell := range row {
		if !utf8.ValidString(cell) {
			row[i] = strings.ToValidUTF8(cell, "\uFFFD")
			repaired = true
		}
	}
	return row, repaired
}

func (r *CSVRepository) info(msg string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}

func (r *CSVRepository) warn(msg string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

func (r *CSVRepository) debug(msg string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
