package query

import (
	"tablegrid/grid/interfaces"
)

// maxPlainPages is the largest page count shown without ellipsis compression.
const maxPlainPages = 7

// PageResult is the computed page window plus the metadata page controls
// need for rendering.
type PageResult struct {
	PageRows    []*interfaces.Row
	CurrentPage int // Effective page after overflow handling
	TotalPages  int
	StartResult int // 1-based ordinal of the first shown row, 0 when empty
	EndResult   int // 1-based ordinal of the last shown row, 0 when empty
}

// Paginate slices the ordered visible rows into the current page window.
//
// TotalPages is ceil(len(rows)/PerPage) with a minimum of 1. A current page
// beyond the total resets to page 1 rather than clamping to the last page;
// that asymmetry is deliberate, preserved behavior. With pagination disabled
// the whole row set is one page.
func Paginate(rows []*interfaces.Row, state interfaces.PageState) PageResult {
	if !state.Enabled || state.PerPage <= 0 {
		end := 0
		if len(rows) > 0 {
			end = len(rows)
		}
		start := 0
		if len(rows) > 0 {
			start = 1
		}
		return PageResult{PageRows: rows, CurrentPage: 1, TotalPages: 1, StartResult: start, EndResult: end}
	}

	total := (len(rows) + state.PerPage - 1) / state.PerPage
	if total < 1 {
		total = 1
	}

	current := state.Current
	if current < 1 {
		current = 1
	}
	if current > total {
		current = 1
	}

	start := (current - 1) * state.PerPage
	end := start + state.PerPage
	if end > len(rows) {
		end = len(rows)
	}

	result := PageResult{
		PageRows:    rows[start:end],
		CurrentPage: current,
		TotalPages:  total,
	}
	if end > start {
		result.StartResult = start + 1
		result.EndResult = end
	}
	return result
}

// PageControls computes the compressed page-number display. All pages are
// shown when the total is at most seven; otherwise the first and last pages
// plus a window of current±1 are shown, with an ellipsis item wherever a gap
// exists.
func PageControls(current, total int) []interfaces.PageItem {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	var items []interfaces.PageItem
	if total <= maxPlainPages {
		for p := 1; p <= total; p++ {
			items = append(items, interfaces.PageItem{Page: p, Current: p == current})
		}
		return items
	}

	prev := 0
	for p := 1; p <= total; p++ {
		if p != 1 && p != total && (p < current-1 || p > current+1) {
			continue
		}
		if prev != 0 && p-prev > 1 {
			items = append(items, interfaces.PageItem{Ellipsis: true})
		}
		items = append(items, interfaces.PageItem{Page: p, Current: p == current})
		prev = p
	}
	return items
}
