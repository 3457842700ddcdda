package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SameAsTitle replaces a subtitle that only repeats the title.
const SameAsTitle = "same as title"

var header = []string{
	"title",
	"subtitle",
	"product_url",
	"asin",
	"image_url",
	"is_sponsored",
	"price",
	"rating",
}

// ProductRecord is one listing block of a search-results page.
// Nil pointers mean the value was absent in the source markup.
type ProductRecord struct {
	Title       *string
	Subtitle    *string
	ProductURL  *string
	ExternalID  *string
	ImageURL    *string
	IsSponsored bool
	Price       *string
	Rating      *string
}

// Header returns the flat-file column names in record field order.
func Header() []string {
	out := make([]string, len(header))
	copy(out, header)
	return out
}

// Row serializes the record in header order; nil fields become empty cells.
func (p ProductRecord) Row() []string {
	return []string{
		deref(p.Title),
		deref(p.Subtitle),
		deref(p.ProductURL),
		deref(p.ExternalID),
		deref(p.ImageURL),
		strconv.FormatBool(p.IsSponsored),
		deref(p.Price),
		deref(p.Rating),
	}
}

// RecordFromRow rebuilds a record from cells written by Row.
func RecordFromRow(cells []string) (ProductRecord, error) {
	if len(cells) != len(header) {
		return ProductRecord{}, fmt.Errorf("row has %d cells, want %d", len(cells), len(header))
	}

	sponsored := false
	if raw := strings.TrimSpace(cells[5]); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return ProductRecord{}, fmt.Errorf("is_sponsored %q: %w", raw, err)
		}
		sponsored = v
	}

	return ProductRecord{
		Title:       optional(cells[0]),
		Subtitle:    optional(cells[1]),
		ProductURL:  optional(cells[2]),
		ExternalID:  optional(cells[3]),
		ImageURL:    optional(cells[4]),
		IsSponsored: sponsored,
		Price:       optional(cells[6]),
		Rating:      optional(cells[7]),
	}, nil
}

// PriceValue strips currency symbols and grouping from the display price.
func (p ProductRecord) PriceValue() (float64, bool) {
	if p.Price == nil {
		return 0, false
	}
	return normalizeNumber(*p.Price)
}

// RatingValue returns X from an "X/5" rating.
func (p ProductRecord) RatingValue() (float64, bool) {
	if p.Rating == nil {
		return 0, false
	}
	value, _, _ := strings.Cut(*p.Rating, "/")
	return normalizeNumber(value)
}

// MissingFields names the optional fields that are nil.
func (p ProductRecord) MissingFields() []string {
	fields := []*string{p.Title, p.Subtitle, p.ProductURL, p.ExternalID, p.ImageURL, nil, p.Price, p.Rating}
	var missing []string
	for i, f := range fields {
		if i == 5 {
			continue
		}
		if f == nil {
			missing = append(missing, header[i])
		}
	}
	return missing
}

// String returns a pointer to s, for building records by hand.
func String(s string) *string {
	return &s
}

func normalizeNumber(raw string) (float64, bool) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func optional(cell string) *string {
	if cell == "" {
		return nil
	}
	return &cell
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
