package query

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"

	"tablegrid/grid/interfaces"
	"tablegrid/grid/search"
)

// Stage is a single step of the row pipeline.
type Stage interface {
	// Execute processes the input rows and returns a new stage result.
	Execute(input *interfaces.StageResult) (*interfaces.StageResult, error)

	// CanCache returns true if this stage's results can be cached.
	CanCache() bool

	// CacheKey returns a canonical key fragment for caching this stage's output.
	CacheKey() string

	// Name returns the stage name for logging.
	Name() string
}

// FilterStage reduces rows to those passing the search predicate and every
// active column constraint.
type FilterStage struct {
	query   search.Query
	filters interfaces.ActiveFilters
	name    string
}

// NewFilterStage creates a filter stage from the active filter state.
// The raw search string is parsed once here, not per row.
func NewFilterStage(filters interfaces.ActiveFilters) *FilterStage {
	return &FilterStage{
		query:   search.Parse(filters.Search),
		filters: filters,
		name:    "filter",
	}
}

// Execute returns the subset of input rows matching all active criteria, in
// input order.
func (f *FilterStage) Execute(input *interfaces.StageResult) (*interfaces.StageResult, error) {
	if f.filters.IsEmpty() {
		return &interfaces.StageResult{Header: input.Header, Rows: input.Rows}, nil
	}
	var out []*interfaces.Row
	for _, row := range input.Rows {
		if f.matches(row) {
			out = append(out, row)
		}
	}
	return &interfaces.StageResult{Header: input.Header, Rows: out}, nil
}

// matches applies the search predicate on the row's full lowercased text,
// then membership tests per filtered column. Column membership is a
// case-sensitive exact match against cached display text; a row too short
// for a filtered column does not match.
func (f *FilterStage) matches(row *interfaces.Row) bool {
	if !f.query.Match(row.FullLower) {
		return false
	}
	for col, values := range f.filters.Columns {
		if len(values) == 0 {
			continue
		}
		cell := row.Cell(col)
		if cell == nil {
			return false
		}
		found := false
		for _, v := range values {
			if cell.Text == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// CanCache returns true; filter output depends only on the filter state.
func (f *FilterStage) CanCache() bool {
	return true
}

// CacheKey returns a canonical key covering the parsed query and every
// column selection, with columns in ascending index order so map iteration
// order cannot produce distinct keys for identical state.
func (f *FilterStage) CacheKey() string {
	cols := make([]int, 0, len(f.filters.Columns))
	for col := range f.filters.Columns {
		if f.filters.HasColumnFilter(col) {
			cols = append(cols, col)
		}
	}
	sort.Ints(cols)

	var sb strings.Builder
	sb.WriteString("filter:")
	sb.WriteString(f.query.CacheKey())
	for _, col := range cols {
		fmt.Fprintf(&sb, ":%d=%s", col, strings.Join(f.filters.Columns[col], "\x1f"))
	}
	return sb.String()
}

// Name returns the stage name.
func (f *FilterStage) Name() string {
	return f.name
}

// SortStage orders rows by a single column with date/numeric/text precedence,
// or restores original order when the direction is none.
type SortStage struct {
	column      int
	direction   interfaces.SortDirection
	dateColumns []bool
	collator    *collate.Collator
	name        string
}

// NewSortStage creates a sort stage. dateColumns flags which columns carry
// normalized date values; the collator provides locale-aware text comparison.
func NewSortStage(column int, direction interfaces.SortDirection, dateColumns []bool, coll *collate.Collator) *SortStage {
	return &SortStage{
		column:      column,
		direction:   direction,
		dateColumns: dateColumns,
		collator:    coll,
		name:        "sort",
	}
}

// Execute returns the sorted rows. The input slice is copied before sorting:
// input rows may come from the cache, and sorting in place would corrupt
// cached entries with a different order.
func (s *SortStage) Execute(input *interfaces.StageResult) (*interfaces.StageResult, error) {
	rows := make([]*interfaces.Row, len(input.Rows))
	copy(rows, input.Rows)

	if s.direction == interfaces.SortNone || s.column < 0 {
		// Stable reset to original table order.
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].RowIndex < rows[j].RowIndex
		})
		return &interfaces.StageResult{Header: input.Header, Rows: rows}, nil
	}

	isDate := s.column < len(s.dateColumns) && s.dateColumns[s.column]
	desc := s.direction == interfaces.SortDesc

	sort.SliceStable(rows, func(i, j int) bool {
		cmp := s.compare(rows[i], rows[j], isDate)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})

	return &interfaces.StageResult{Header: input.Header, Rows: rows}, nil
}

// compare orders two rows by the sort column. Precedence: ISO date strings
// when the column is a date column and both cells have a date value, then
// numeric when both cells parsed numerically, then collated display text.
// A missing cell on either side compares equal.
func (s *SortStage) compare(a, b *interfaces.Row, isDate bool) int {
	ca := a.Cell(s.column)
	cb := b.Cell(s.column)
	if ca == nil || cb == nil {
		return 0
	}

	if isDate && ca.DateISO != "" && cb.DateISO != "" {
		return strings.Compare(ca.DateISO, cb.DateISO)
	}

	if ca.HasNumeric && cb.HasNumeric {
		switch {
		case ca.Numeric < cb.Numeric:
			return -1
		case ca.Numeric > cb.Numeric:
			return 1
		default:
			return 0
		}
	}

	if s.collator != nil {
		return s.collator.CompareString(ca.Text, cb.Text)
	}
	return strings.Compare(ca.Text, cb.Text)
}

// CanCache returns true; sort output depends only on column and direction.
func (s *SortStage) CanCache() bool {
	return true
}

// CacheKey returns a canonical key for this sort configuration.
func (s *SortStage) CacheKey() string {
	return fmt.Sprintf("sort:%d:%s", s.column, s.direction)
}

// Name returns the stage name.
func (s *SortStage) Name() string {
	return s.name
}
