package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"ListingDashboard/internal/domain"
)

const unknown = "-"

// WriteSummary prints the extracted records as a console table.
func WriteSummary(w io.Writer, source string, records []domain.ProductRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%d products (markup from %s)", len(records), source))
	t.AppendHeader(table.Row{"#", "Title", "ASIN", "Price", "Rating", "Sponsored"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 48},
	})

	sponsored := 0
	for i, rec := range records {
		if rec.IsSponsored {
			sponsored++
		}
		t.AppendRow(table.Row{
			i + 1,
			orUnknown(rec.Title),
			orUnknown(rec.ExternalID),
			orUnknown(rec.Price),
			orUnknown(rec.Rating),
			yesNo(rec.IsSponsored),
		})
	}

	t.AppendFooter(table.Row{"", "", "", "", "sponsored", sponsored})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func orUnknown(s *string) string {
	if s == nil {
		return unknown
	}
	return *s
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
