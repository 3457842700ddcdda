package parser

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"ListingDashboard/internal/domain"
	"ListingDashboard/internal/metrics"
	"ListingDashboard/internal/scanner"
)

func loadFixture(t *testing.T) string {
	t.Helper()

	raw, err := os.ReadFile("testdata/search_results.html")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(raw)
}

func TestAmazonExtractorFixture(t *testing.T) {
	t.Parallel()

	records, err := NewAmazonExtractor("").Extract(context.Background(), loadFixture(t))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	s := domain.String
	want := []domain.ProductRecord{
		{
			Title:       s("Crucial"),
			Subtitle:    s("Crucial RAM 8GB DDR4 3200MHz CL22 Laptop Memory"),
			ProductURL:  s("https://www.amazon.in/Crucial-3200MHz-Laptop-Memory-CT8G4SFRA32A/dp/B08C4X9VR5/ref=sr_1_1_sspa?keywords=ram&psc=1"),
			ExternalID:  s("B08C4X9VR5"),
			ImageURL:    s("https://m.media-amazon.com/images/I/crucial.jpg"),
			IsSponsored: true,
			Price:       s("₹1,549"),
			Rating:      s("4.5/5"),
		},
		{
			Title:      s("Kingston FURY Beast 8GB"),
			Subtitle:   s(domain.SameAsTitle),
			ProductURL: s("https://www.amazon.in/Kingston-FURY-Beast-8GB/dp/B0BZ7X4N2K/ref=sr_1_2?keywords=ram"),
			ExternalID: s("B0BZ7X4N2K"),
			ImageURL:   s("https://m.media-amazon.com/images/I/kingston.jpg"),
			Rating:     s("4.2/5"),
		},
		{
			Title:      s("Consistent <b>Bold</b> RAM"),
			ProductURL: s("https://www.amazon.in/gp/bestsellers/computers"),
			Price:      s("₹999"),
		},
	}

	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestAmazonExtractorOneRecordPerBlock(t *testing.T) {
	t.Parallel()

	cases := []string{
		``,
		`<div data-component-type="s-search-result"></div>`,
		`<div data-component-type="s-search-result"></div><div data-component-type="s-search-result"><h2></h2></div>`,
		`<div data-component-type="s-search-result"><a href="/sspa/click?spc=1">x</a></div>` +
			`<div data-component-type="other"></div>` +
			`<section><div data-component-type="s-search-result"><span class="a-offscreen"></span></div></section>`,
	}
	wantCounts := []int{0, 1, 2, 2}

	extractor := NewAmazonExtractor("https://www.amazon.in/")
	for i, markup := range cases {
		records, err := extractor.Extract(context.Background(), markup)
		if err != nil {
			t.Fatalf("case %d: Extract: %v", i, err)
		}
		if len(records) != wantCounts[i] {
			t.Fatalf("case %d: got %d records, want %d", i, len(records), wantCounts[i])
		}
		for _, rec := range records {
			if rec.Price != nil || rec.ProductURL != nil || rec.ExternalID != nil {
				t.Fatalf("case %d: empty blocks must yield nil fields, got %+v", i, rec)
			}
		}
	}
}

func TestAmazonExtractorCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewAmazonExtractor("").Extract(ctx, "<html/>"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestStrategyExtractorRecordsMetrics(t *testing.T) {
	t.Parallel()

	reg := scanner.NewRegistry()
	reg.Register(NewAmazonExtractor(""))
	m := metrics.New()

	records, err := NewStrategyExtractor(reg, "amazon", m, nil).Extract(context.Background(), loadFixture(t))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if got := testutil.ToFloat64(m.BlocksMatched); got != 3 {
		t.Fatalf("blocks counter = %v", got)
	}
	if got := testutil.ToFloat64(m.FieldsMissing.WithLabelValues("price")); got != 1 {
		t.Fatalf("missing price counter = %v", got)
	}
	if got := testutil.ToFloat64(m.FieldsMissing.WithLabelValues("rating")); got != 1 {
		t.Fatalf("missing rating counter = %v", got)
	}
}

func TestStrategyExtractorUnknownProfile(t *testing.T) {
	t.Parallel()

	_, err := NewStrategyExtractor(scanner.NewRegistry(), "ebay", nil, nil).Extract(context.Background(), "")
	if err == nil || !strings.Contains(err.Error(), "ebay") {
		t.Fatalf("expected unknown profile error, got %v", err)
	}
}
