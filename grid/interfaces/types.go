package interfaces

// Cell is the cached representation of a single table cell.
// Numeric and date values are pre-parsed once at cache build time so the
// filter and sort engines never touch the original markup again.
type Cell struct {
	Text       string  // Display text: trimmed, internal whitespace collapsed
	LowerText  string  // Lowercased copy of Text for case-insensitive matching
	Numeric    float64 // Parsed numeric value (valid only when HasNumeric)
	HasNumeric bool    // Whether the cleaned text parsed as a finite number
	DateISO    string  // Normalized YYYY-MM-DD form, empty when not a date cell
}

// Row represents a single cached table row.
// Rows are immutable after the cache is built; the display order is tracked
// through DisplayIndex which is reassigned after every pipeline run.
type Row struct {
	RowIndex     int    // 0-based index of this row in the source table body
	DisplayIndex int    // 0-based index in the current result set, -1 if not assigned
	Cells        []Cell // Pre-parsed cells in column order
	FullText     string // All cell display texts joined with single spaces
	FullLower    string // Lowercased FullText used by the search predicate
}

// Cell returns the cell at the given column index, or nil when the row is
// shorter than the requested column.
func (r *Row) Cell(col int) *Cell {
	if col < 0 || col >= len(r.Cells) {
		return nil
	}
	return &r.Cells[col]
}

// ActiveFilters holds the full user-selected filter state.
// Values within a column are OR-combined; constraints across columns are
// AND-combined. Column filter membership is a case-sensitive exact match
// against the cached cell display text.
type ActiveFilters struct {
	Search  string           // Raw free-text search query
	Columns map[int][]string // Column index -> ordered set of selected values
}

// ColumnValues returns the selected values for a column, nil when the column
// imposes no constraint.
func (f ActiveFilters) ColumnValues(col int) []string {
	if f.Columns == nil {
		return nil
	}
	return f.Columns[col]
}

// HasColumnFilter reports whether the column has a non-empty selection set.
func (f ActiveFilters) HasColumnFilter(col int) bool {
	return len(f.ColumnValues(col)) > 0
}

// IsEmpty reports whether no search term and no column selection is active.
func (f ActiveFilters) IsEmpty() bool {
	if f.Search != "" {
		return false
	}
	for _, vals := range f.Columns {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// SortDirection represents the sort order of a column.
type SortDirection int

const (
	SortNone SortDirection = iota // Original table order by RowIndex
	SortAsc
	SortDesc
)

// String returns the direction name used in URLs and render state.
func (d SortDirection) String() string {
	switch d {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return "none"
	}
}

// Next cycles the direction through the three states: none -> asc -> desc -> none.
func (d SortDirection) Next() SortDirection {
	switch d {
	case SortNone:
		return SortAsc
	case SortAsc:
		return SortDesc
	default:
		return SortNone
	}
}

// SortState tracks the active sort column and direction.
// Column is -1 when no column is sorted.
type SortState struct {
	Column    int
	Direction SortDirection
}

// PageState holds the pagination configuration and position.
type PageState struct {
	Current    int  // 1-based current page
	PerPage    int  // Items per page, always > 0 when Enabled
	TotalPages int  // Computed from the last visible row count, minimum 1
	Enabled    bool // False when the widget was configured without pagination
}

// StageResult is the unit of data flowing between pipeline stages.
type StageResult struct {
	Header []string // Column display names
	Rows   []*Row
}

// FilterPill describes one active filter criterion for rendering collaborators.
// Column is -1 for the free-text search pill.
type FilterPill struct {
	Column int    `json:"column"`
	Name   string `json:"name"`
	Value  string `json:"value"`
}

// PageItem is one entry of the compressed page-number display.
// Ellipsis items mark a gap and carry no page number.
type PageItem struct {
	Page     int  `json:"page,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}
