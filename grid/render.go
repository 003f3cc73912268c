package grid

import (
	"fmt"

	"github.com/ohler55/ojg/oj"

	"tablegrid/grid/interfaces"
	"tablegrid/grid/query"
)

// RenderState is everything a front end needs to redraw the widget after a
// state change: the visible page of rows plus the control strip around it.
type RenderState struct {
	Header        []string                `json:"header"`
	Rows          [][]string              `json:"rows"`
	TotalResults  int                     `json:"total_results"`
	StartResult   int                     `json:"start_result"`
	EndResult     int                     `json:"end_result"`
	CurrentPage   int                     `json:"current_page"`
	TotalPages    int                     `json:"total_pages"`
	SortColumn    int                     `json:"sort_column"`
	SortDirection string                  `json:"sort_direction"`
	Pills         []interfaces.FilterPill `json:"pills"`
	Pages         []interfaces.PageItem   `json:"pages"`
	NoResults     bool                    `json:"no_results"`
}

// Render produces the current view snapshot.
func (g *Grid) Render() (*RenderState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	matched, pageResult, err := g.applyLocked()
	if err != nil {
		return nil, err
	}

	state := &RenderState{
		Header:        g.header,
		Rows:          rowTexts(pageResult.PageRows),
		TotalResults:  len(matched),
		StartResult:   pageResult.StartResult,
		EndResult:     pageResult.EndResult,
		CurrentPage:   pageResult.CurrentPage,
		TotalPages:    pageResult.TotalPages,
		SortColumn:    g.sort.Column,
		SortDirection: g.sort.Direction.String(),
		Pills:         g.pillsLocked(),
		NoResults:     len(matched) == 0,
	}
	if g.page.Enabled {
		state.Pages = query.PageControls(pageResult.CurrentPage, pageResult.TotalPages)
	}
	return state, nil
}

// JSON marshals the snapshot for a front end or for diffing in tests.
func (s *RenderState) JSON() (string, error) {
	out, err := oj.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal render state: %w", err)
	}
	return string(out), nil
}

// pillsLocked builds the removable filter chips: one for the search query
// when present, then one per selected column value in dropdown order.
func (g *Grid) pillsLocked() []interfaces.FilterPill {
	var pills []interfaces.FilterPill
	if g.filters.Search != "" {
		pills = append(pills, interfaces.FilterPill{
			Column: -1,
			Name:   "Search",
			Value:  g.filters.Search,
		})
	}
	for _, col := range g.filterColumns {
		for _, v := range g.filters.ColumnValues(col) {
			pills = append(pills, interfaces.FilterPill{
				Column: col,
				Name:   g.header[col],
				Value:  v,
			})
		}
	}
	return pills
}

func rowTexts(rows []*interfaces.Row) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		texts := make([]string, len(r.Cells))
		for j := range r.Cells {
			texts[j] = r.Cells[j].Text
		}
		out[i] = texts
	}
	return out
}
