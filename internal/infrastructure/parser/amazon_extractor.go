package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ListingDashboard/internal/domain"
	"ListingDashboard/internal/scanner"
)

const (
	defaultAmazonBaseURL = "https://www.amazon.in"

	listingSelector   = `div[data-component-type="s-search-result"]`
	longTitleSelector = "h2.a-size-base-plus.a-spacing-none.a-color-base.a-text-normal"
	ratingSuffix      = " out of 5 stars"
)

// AmazonExtractor parses an Amazon search-results page.
type AmazonExtractor struct {
	baseURL string
}

var _ scanner.Extractor = (*AmazonExtractor)(nil)

// NewAmazonExtractor resolves relative product links against baseURL.
func NewAmazonExtractor(baseURL string) *AmazonExtractor {
	if baseURL == "" {
		baseURL = defaultAmazonBaseURL
	}
	return &AmazonExtractor{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Name identifies the profile inside the registry.
func (a *AmazonExtractor) Name() string {
	return "amazon"
}

// Extract returns one record per listing block, in document order.
func (a *AmazonExtractor) Extract(ctx context.Context, markup string) ([]domain.ProductRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	blocks := doc.Find(listingSelector)
	records := make([]domain.ProductRecord, 0, blocks.Length())
	blocks.Each(func(_ int, block *goquery.Selection) {
		records = append(records, a.parseBlock(block))
	})

	return records, nil
}

func (a *AmazonExtractor) parseBlock(block *goquery.Selection) domain.ProductRecord {
	title := spanText(block.Find("h2").First())

	subtitle := spanText(block.Find(longTitleSelector).First())
	if title != nil && subtitle != nil && *title == *subtitle {
		subtitle = domain.String(domain.SameAsTitle)
	}

	var link, asin *string
	if href, ok := block.Find("a[href]").First().Attr("href"); ok {
		if canonical, ok := CanonicalURL(a.baseURL, href); ok {
			link = &canonical
			asin = ExternalID(canonical)
		}
	}

	return domain.ProductRecord{
		Title:       title,
		Subtitle:    subtitle,
		ProductURL:  link,
		ExternalID:  asin,
		ImageURL:    attr(block.Find("img.s-image").First(), "src"),
		IsSponsored: hasSponsoredLabel(block),
		Price:       text(block.Find("span.a-offscreen").First()),
		Rating:      rating(block.Find("span.a-icon-alt").First()),
	}
}

func spanText(heading *goquery.Selection) *string {
	if heading.Length() == 0 {
		return nil
	}
	return text(heading.Find("span").First())
}

func text(sel *goquery.Selection) *string {
	if sel.Length() == 0 {
		return nil
	}
	value := strings.TrimSpace(sel.Text())
	if value == "" {
		return nil
	}
	return &value
}

func attr(sel *goquery.Selection, name string) *string {
	value, ok := sel.Attr(name)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return nil
	}
	return &value
}

func rating(sel *goquery.Selection) *string {
	value := text(sel)
	if value == nil {
		return nil
	}
	normalized := strings.Replace(*value, ratingSuffix, "/5", 1)
	return &normalized
}

func hasSponsoredLabel(block *goquery.Selection) bool {
	labels := block.Find("span").FilterFunction(func(_ int, span *goquery.Selection) bool {
		return strings.Contains(span.Text(), "Sponsored")
	})
	return labels.Length() > 0
}
