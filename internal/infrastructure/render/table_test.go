package render

import (
	"slices"
	"testing"

	"ListingDashboard/internal/domain"
)

func rec(title string, price, rating *string, sponsored bool) domain.ProductRecord {
	r := domain.ProductRecord{Price: price, Rating: rating, IsSponsored: sponsored}
	if title != "" {
		r.Title = domain.String(title)
	}
	return r
}

func fixtureRecords() []domain.ProductRecord {
	s := domain.String
	return []domain.ProductRecord{
		rec("crucial", s("₹1,549"), s("4.5/5"), true),
		rec("Kingston", nil, s("4.2/5"), false),
		rec("adata", s("₹999"), nil, false),
		rec("", s("₹1,549"), s("4.2/5"), true),
		rec("Zion", s("₹2,100"), s("3.9/5"), false),
	}
}

func TestTableStartsInInputOrder(t *testing.T) {
	t.Parallel()

	table := NewTable(fixtureRecords())
	if got := table.Order(); !slices.Equal(got, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("unexpected initial order: %v", got)
	}
	if col, _ := table.State(); col != "" {
		t.Fatalf("no column must be active before sorting, got %s", col)
	}
}

func TestSortPermutations(t *testing.T) {
	t.Parallel()

	rows := NewTable(fixtureRecords()).rows
	cases := []struct {
		column    Column
		direction Direction
		want      []int
	}{
		// equal prices (0 and 3) keep input order; unknown price (1) last.
		{ColumnPrice, Ascending, []int{2, 0, 3, 4, 1}},
		{ColumnPrice, Descending, []int{4, 0, 3, 2, 1}},
		{ColumnRating, Ascending, []int{4, 1, 3, 0, 2}},
		{ColumnRating, Descending, []int{0, 1, 3, 4, 2}},
		// case-insensitive, missing title last.
		{ColumnTitle, Ascending, []int{2, 0, 1, 4, 3}},
		{ColumnTitle, Descending, []int{4, 1, 0, 2, 3}},
		// two buckets, input order within each.
		{ColumnSponsored, Ascending, []int{0, 3, 1, 2, 4}},
		{ColumnSponsored, Descending, []int{1, 2, 4, 0, 3}},
	}

	for _, tc := range cases {
		if got := Permutation(rows, tc.column, tc.direction); !slices.Equal(got, tc.want) {
			t.Fatalf("%s %s: got %v, want %v", tc.column, tc.direction, got, tc.want)
		}
	}
}

func TestSortToggle(t *testing.T) {
	t.Parallel()

	table := NewTable(fixtureRecords())

	if err := table.Sort(ColumnPrice); err != nil {
		t.Fatalf("Sort: %v", err)
	}
	asc := table.Order()
	if col, dir := table.State(); col != ColumnPrice || dir != Ascending {
		t.Fatalf("first selection must be ascending, got %s %s", col, dir)
	}

	_ = table.Sort(ColumnPrice)
	if _, dir := table.State(); dir != Descending {
		t.Fatalf("second selection must flip to descending, got %s", dir)
	}

	_ = table.Sort(ColumnPrice)
	if got := table.Order(); !slices.Equal(got, asc) {
		t.Fatalf("double toggle must restore ascending order: got %v, want %v", got, asc)
	}

	_ = table.Sort(ColumnRating)
	if col, dir := table.State(); col != ColumnRating || dir != Ascending {
		t.Fatalf("switching column must reset to ascending, got %s %s", col, dir)
	}
}

func TestSortRejectsUnknownColumn(t *testing.T) {
	t.Parallel()

	table := NewTable(fixtureRecords())
	if err := table.Sort("subtitle"); err == nil {
		t.Fatal("expected error for non-sortable column")
	}
	if col, _ := table.State(); col != "" {
		t.Fatalf("failed sort must not change state, got %s", col)
	}
}

func TestRowsFollowOrder(t *testing.T) {
	t.Parallel()

	table := NewTable(fixtureRecords())
	_ = table.Sort(ColumnPrice)

	rows := table.Rows()
	if rows[0].Index != 2 || rows[0].PriceValue() != "999" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	last := rows[len(rows)-1]
	if last.Index != 1 || last.PriceValue() != "" {
		t.Fatalf("unknown price must be last with empty value, got %+v", last)
	}
}

func TestPermutationsCoverEverySortableColumn(t *testing.T) {
	t.Parallel()

	perms := NewTable(fixtureRecords()).Permutations()
	for _, col := range Columns {
		for _, dir := range []Direction{Ascending, Descending} {
			if len(perms[col][dir]) != 5 {
				t.Fatalf("%s %s: got %v", col, dir, perms[col][dir])
			}
		}
	}
}
