package render

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"ListingDashboard/internal/domain"
)

// Column names a sortable dashboard column.
type Column string

const (
	ColumnTitle     Column = "title"
	ColumnPrice     Column = "price"
	ColumnRating    Column = "rating"
	ColumnSponsored Column = "sponsored"
)

// Columns lists sortable columns in header order.
var Columns = []Column{ColumnTitle, ColumnPrice, ColumnRating, ColumnSponsored}

// Direction is the sort order of the active column.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Reverse flips the direction.
func (d Direction) Reverse() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Row pairs a record with its normalized sort keys. Nil keys are unknown.
type Row struct {
	Index     int
	Record    domain.ProductRecord
	titleKey  *string
	priceKey  *float64
	ratingKey *float64
}

// PriceValue renders the normalized price for data attributes; empty when unknown.
func (r Row) PriceValue() string {
	return formatKey(r.priceKey)
}

// RatingValue renders the normalized rating for data attributes; empty when unknown.
func (r Row) RatingValue() string {
	return formatKey(r.ratingKey)
}

// Table is the in-memory model behind the dashboard: rows in input order plus
// the toggle state of the last selected column.
type Table struct {
	rows      []Row
	column    Column
	direction Direction
	order     []int
}

// NewTable builds rows from records, keeping their input order.
func NewTable(records []domain.ProductRecord) *Table {
	rows := make([]Row, len(records))
	for i, rec := range records {
		row := Row{Index: i, Record: rec}
		if rec.Title != nil {
			key := strings.ToLower(*rec.Title)
			row.titleKey = &key
		}
		if v, ok := rec.PriceValue(); ok {
			row.priceKey = &v
		}
		if v, ok := rec.RatingValue(); ok {
			row.ratingKey = &v
		}
		rows[i] = row
	}

	return &Table{rows: rows, order: identity(len(rows))}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Sort selects column: a new column sorts ascending, the same column again
// flips the direction. Order is always rebuilt from the input order.
func (t *Table) Sort(column Column) error {
	if !sortable(column) {
		return fmt.Errorf("column %q is not sortable", column)
	}

	if t.column == column {
		t.direction = t.direction.Reverse()
	} else {
		t.column = column
		t.direction = Ascending
	}
	t.order = Permutation(t.rows, t.column, t.direction)
	return nil
}

// State reports the active column and direction; column is empty before the first Sort.
func (t *Table) State() (Column, Direction) {
	return t.column, t.direction
}

// Order returns row indexes in display order.
func (t *Table) Order() []int {
	return slices.Clone(t.order)
}

// Rows returns rows in display order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.order))
	for i, idx := range t.order {
		out[i] = t.rows[idx]
	}
	return out
}

// Permutations precomputes the display order for every column and direction.
func (t *Table) Permutations() map[Column]map[Direction][]int {
	out := make(map[Column]map[Direction][]int, len(Columns))
	for _, col := range Columns {
		out[col] = map[Direction][]int{
			Ascending:  Permutation(t.rows, col, Ascending),
			Descending: Permutation(t.rows, col, Descending),
		}
	}
	return out
}

// Permutation stable-sorts row indexes by column. Unknown values go last in
// both directions and equal keys keep their input order.
func Permutation(rows []Row, column Column, direction Direction) []int {
	order := identity(len(rows))
	slices.SortStableFunc(order, func(a, b int) int {
		return compareRows(rows[a], rows[b], column, direction)
	})
	return order
}

func compareRows(a, b Row, column Column, direction Direction) int {
	c, aKnown, bKnown := compareKeys(a, b, column)
	switch {
	case aKnown && !bKnown:
		return -1
	case !aKnown && bKnown:
		return 1
	case !aKnown && !bKnown:
		return 0
	}
	if direction == Descending {
		return -c
	}
	return c
}

func compareKeys(a, b Row, column Column) (int, bool, bool) {
	switch column {
	case ColumnTitle:
		if a.titleKey == nil || b.titleKey == nil {
			return 0, a.titleKey != nil, b.titleKey != nil
		}
		return strings.Compare(*a.titleKey, *b.titleKey), true, true
	case ColumnPrice:
		return compareFloat(a.priceKey, b.priceKey)
	case ColumnRating:
		return compareFloat(a.ratingKey, b.ratingKey)
	case ColumnSponsored:
		return sponsoredBucket(a) - sponsoredBucket(b), true, true
	default:
		return 0, true, true
	}
}

func compareFloat(a, b *float64) (int, bool, bool) {
	if a == nil || b == nil {
		return 0, a != nil, b != nil
	}
	switch {
	case *a < *b:
		return -1, true, true
	case *a > *b:
		return 1, true, true
	default:
		return 0, true, true
	}
}

// sponsored rows form the first priority class.
func sponsoredBucket(r Row) int {
	if r.Record.IsSponsored {
		return 0
	}
	return 1
}

func sortable(column Column) bool {
	return slices.Contains(Columns, column)
}

func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func formatKey(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
