package query

import (
	"strconv"
	"testing"

	"tablegrid/grid/interfaces"
)

func numberedRows(n int) []*interfaces.Row {
	rows := make([]*interfaces.Row, n)
	for i := range rows {
		rows[i] = makeRow(i, strconv.Itoa(i+1))
	}
	return rows
}

// TestPaginate tests page slicing and metadata over 23 rows at 10 per page
func TestPaginate(t *testing.T) {
	rows := numberedRows(23)

	tests := []struct {
		name        string
		current     int
		perPage     int
		wantRows    int
		wantCurrent int
		wantTotal   int
		wantStart   int
		wantEnd     int
	}{
		{"first page", 1, 10, 10, 1, 3, 1, 10},
		{"middle page", 2, 10, 10, 2, 3, 11, 20},
		{"last partial page", 3, 10, 3, 3, 3, 21, 23},
		{"exact division", 1, 23, 23, 1, 1, 1, 23},
		{"single row pages", 23, 1, 1, 23, 23, 23, 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Paginate(rows, interfaces.PageState{Current: tt.current, PerPage: tt.perPage, Enabled: true})
			if len(r.PageRows) != tt.wantRows {
				t.Errorf("page rows = %d, expected %d", len(r.PageRows), tt.wantRows)
			}
			if r.CurrentPage != tt.wantCurrent {
				t.Errorf("current = %d, expected %d", r.CurrentPage, tt.wantCurrent)
			}
			if r.TotalPages != tt.wantTotal {
				t.Errorf("total = %d, expected %d", r.TotalPages, tt.wantTotal)
			}
			if r.StartResult != tt.wantStart || r.EndResult != tt.wantEnd {
				t.Errorf("window = %d-%d, expected %d-%d", r.StartResult, r.EndResult, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

// TestPaginateOverflowResetsToFirstPage documents the deliberate overflow
// behavior: a current page beyond the total resets to page 1, it is NOT
// clamped to the last valid page.
func TestPaginateOverflowResetsToFirstPage(t *testing.T) {
	rows := numberedRows(23)

	// On page 3 of 3, then the page size grows to 25 and only 1 page remains.
	r := Paginate(rows, interfaces.PageState{Current: 3, PerPage: 25, Enabled: true})
	if r.TotalPages != 1 {
		t.Fatalf("total = %d, expected 1", r.TotalPages)
	}
	if r.CurrentPage != 1 {
		t.Errorf("current = %d, expected reset to 1 (not clamped)", r.CurrentPage)
	}
	if r.StartResult != 1 || r.EndResult != 23 {
		t.Errorf("window = %d-%d, expected 1-23", r.StartResult, r.EndResult)
	}

	// Overflow within multiple pages also resets to 1, not to the last page.
	r = Paginate(rows, interfaces.PageState{Current: 9, PerPage: 10, Enabled: true})
	if r.CurrentPage != 1 {
		t.Errorf("current = %d, expected reset to 1 rather than clamp to 3", r.CurrentPage)
	}
}

// TestPaginateDisabled tests the single-page behavior without pagination
func TestPaginateDisabled(t *testing.T) {
	rows := numberedRows(5)
	r := Paginate(rows, interfaces.PageState{Enabled: false})
	if len(r.PageRows) != 5 || r.TotalPages != 1 || r.CurrentPage != 1 {
		t.Errorf("disabled pagination must show everything on one page, got %+v", r)
	}
	if r.StartResult != 1 || r.EndResult != 5 {
		t.Errorf("window = %d-%d, expected 1-5", r.StartResult, r.EndResult)
	}
}

// TestPaginateEmpty tests zero visible rows
func TestPaginateEmpty(t *testing.T) {
	r := Paginate(nil, interfaces.PageState{Current: 1, PerPage: 10, Enabled: true})
	if len(r.PageRows) != 0 {
		t.Errorf("expected no rows, got %d", len(r.PageRows))
	}
	if r.TotalPages != 1 {
		t.Errorf("total = %d, expected minimum 1", r.TotalPages)
	}
	if r.StartResult != 0 || r.EndResult != 0 {
		t.Errorf("window = %d-%d, expected 0-0", r.StartResult, r.EndResult)
	}
}

func controlString(items []interfaces.PageItem) string {
	s := ""
	for i, it := range items {
		if i > 0 {
			s += " "
		}
		if it.Ellipsis {
			s += "..."
			continue
		}
		if it.Current {
			s += "[" + strconv.Itoa(it.Page) + "]"
			continue
		}
		s += strconv.Itoa(it.Page)
	}
	return s
}

// TestPageControls tests ellipsis compression of the page-number display
func TestPageControls(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		total    int
		expected string
	}{
		{"single page", 1, 1, "[1]"},
		{"all pages up to seven", 3, 7, "1 2 [3] 4 5 6 7"},
		{"eight pages current first", 1, 8, "[1] 2 ... 8"},
		{"gap on both sides", 5, 10, "1 ... 4 [5] 6 ... 10"},
		{"current near start", 2, 10, "1 [2] 3 ... 10"},
		{"current near end", 9, 10, "1 ... 8 [9] 10"},
		{"adjacent to first", 3, 10, "1 2 [3] 4 ... 10"},
		{"current last", 10, 10, "1 ... 9 [10]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := controlString(PageControls(tt.current, tt.total))
			if got != tt.expected {
				t.Errorf("PageControls(%d, %d) = %q, expected %q", tt.current, tt.total, got, tt.expected)
			}
		})
	}
}
