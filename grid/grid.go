// Package grid enhances a parsed HTML table with search, per-column
// filtering, sorting, pagination and shareable URL state. All row data is
// read once into an in-memory cache at construction; every later operation
// works against that cache without touching the source document again.
package grid

import (
	"fmt"
	"log"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tablegrid/grid/cache"
	"tablegrid/grid/dates"
	"tablegrid/grid/htmltable"
	"tablegrid/grid/interfaces"
	"tablegrid/grid/query"
	"tablegrid/grid/rowcache"
	"tablegrid/grid/settings"
	"tablegrid/grid/urlstate"
)

// Grid is one enhanced table. Methods are safe for concurrent use.
type Grid struct {
	mu sync.Mutex

	cfg         settings.Config
	header      []string
	dateColumns []bool
	rows        *rowcache.Cache
	coll        *collate.Collator
	results     *cache.Cache

	// indexes of the columns that carry a filter dropdown, in config order
	filterColumns []int

	filters interfaces.ActiveFilters
	sort    interfaces.SortState
	page    interfaces.PageState
}

// New builds a grid from a parsed table. Misconfigured column names are
// logged and skipped rather than failing construction, so a renamed column
// degrades the widget instead of breaking the page.
func New(tbl *htmltable.Table, cfg settings.Config) (*Grid, error) {
	if tbl == nil || len(tbl.Header) == 0 {
		return nil, fmt.Errorf("table has no header row")
	}

	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		log.Printf("[SETTINGS] invalid locale %q, using neutral collation: %v", cfg.Locale, err)
		tag = language.Und
	}
	coll := collate.New(tag)

	dateColumns := dates.DetectDateColumns(tbl.Header)
	rows := rowcache.Build(tbl, dateColumns, coll)

	g := &Grid{
		cfg:         cfg,
		header:      tbl.Header,
		dateColumns: dateColumns,
		rows:        rows,
		coll:        coll,
		results:     cache.New(int64(cfg.CacheSizeLimitMB) * 1024 * 1024),
		filters:     interfaces.ActiveFilters{Columns: make(map[int][]string)},
		sort:        interfaces.SortState{Column: -1},
		page: interfaces.PageState{
			Current: 1,
			PerPage: cfg.ItemsPerPage,
			Enabled: cfg.ItemsPerPage > 0,
		},
	}

	for _, name := range cfg.ColumnFilterNames {
		col, ok := g.columnByName(name)
		if !ok {
			log.Printf("[SETTINGS] filter column %q not found in header, skipping", name)
			continue
		}
		g.filterColumns = append(g.filterColumns, col)
	}

	if cfg.DefaultSortColumn != "" {
		if col, ok := g.columnByName(cfg.DefaultSortColumn); ok {
			dir := interfaces.SortAsc
			if cfg.DefaultSortOrder == "Descending" {
				dir = interfaces.SortDesc
			}
			g.sort = interfaces.SortState{Column: col, Direction: dir}
		} else {
			log.Printf("[SETTINGS] default sort column %q not found in header, keeping document order", cfg.DefaultSortColumn)
		}
	}

	return g, nil
}

// Header returns the column display names.
func (g *Grid) Header() []string {
	return g.header
}

// Config returns the configuration the grid was built with.
func (g *Grid) Config() settings.Config {
	return g.cfg
}

// FilterColumns returns the indexes of the columns configured with a
// filter dropdown, in configuration order.
func (g *Grid) FilterColumns() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]int, len(g.filterColumns))
	copy(out, g.filterColumns)
	return out
}

// FilterOptions returns the dropdown options for a column: the distinct
// cell values present in that column, pre-sorted at build time.
func (g *Grid) FilterOptions(col int) []string {
	if col < 0 || col >= len(g.rows.UniqueValues) {
		return nil
	}
	return g.rows.UniqueValues[col]
}

// SetSearch replaces the free-text search query and returns to page 1.
func (g *Grid) SetSearch(raw string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.filters.Search = raw
	g.resetPage()
}

// ClearSearch removes the search query and returns to page 1.
func (g *Grid) ClearSearch() {
	g.SetSearch("")
}

// SetColumnFilter replaces the whole selection for a column. An empty
// selection removes the column's constraint entirely.
func (g *Grid) SetColumnFilter(col int, values []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(values) == 0 {
		delete(g.filters.Columns, col)
	} else {
		selected := make([]string, len(values))
		copy(selected, values)
		g.filters.Columns[col] = selected
	}
	g.resetPage()
}

// ToggleColumnFilter adds the value to the column's selection if absent and
// removes it if present. Removing the last value drops the constraint.
func (g *Grid) ToggleColumnFilter(col int, value string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	selected := g.filters.Columns[col]
	for i, v := range selected {
		if v == value {
			selected = append(selected[:i], selected[i+1:]...)
			if len(selected) == 0 {
				delete(g.filters.Columns, col)
			} else {
				g.filters.Columns[col] = selected
			}
			g.resetPage()
			return
		}
	}
	g.filters.Columns[col] = append(selected, value)
	g.resetPage()
}

// ClearColumnFilter removes the whole selection for a column.
func (g *Grid) ClearColumnFilter(col int) {
	g.SetColumnFilter(col, nil)
}

// ClearAll removes the search query and every column filter, returning to
// page 1. The sort order is kept.
func (g *Grid) ClearAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.filters = interfaces.ActiveFilters{Columns: make(map[int][]string)}
	g.resetPage()
}

// SortByColumn cycles the sort state for a column. Clicking a new column
// starts at ascending; repeated clicks on the same column advance
// ascending -> descending -> document order.
func (g *Grid) SortByColumn(col int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if col < 0 || col >= len(g.header) {
		return
	}
	if g.sort.Column == col {
		g.sort.Direction = g.sort.Direction.Next()
		if g.sort.Direction == interfaces.SortNone {
			g.sort.Column = -1
		}
	} else {
		g.sort = interfaces.SortState{Column: col, Direction: interfaces.SortAsc}
	}
	g.resetPage()
}

// Sort returns the current sort state.
func (g *Grid) Sort() interfaces.SortState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sort
}

// GoToPage navigates directly to the given page. This is the one state
// change that does not reset pagination; out-of-range values are handled at
// render time.
func (g *Grid) GoToPage(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.page.Enabled || n < 1 {
		return
	}
	g.page.Current = n
}

// SetPageSize changes the rows-per-page setting. Zero disables pagination.
// The view returns to page 1.
func (g *Grid) SetPageSize(perPage int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if perPage < 0 {
		perPage = 0
	}
	g.page.PerPage = perPage
	g.page.Enabled = perPage > 0
	g.page.Current = 1
}

// Apply runs the current filters and sort through the cached pipeline and
// returns the matching rows in display order, plus the page window.
func (g *Grid) Apply() ([]*interfaces.Row, query.PageResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.applyLocked()
}

func (g *Grid) applyLocked() ([]*interfaces.Row, query.PageResult, error) {
	p := query.New(g.rows.Hash, g.results).
		Add(query.NewFilterStage(g.filters)).
		Add(query.NewSortStage(g.sort.Column, g.sort.Direction, g.dateColumns, g.coll))

	result, err := p.Execute(&interfaces.StageResult{Header: g.header, Rows: g.rows.Rows})
	if err != nil {
		return nil, query.PageResult{}, fmt.Errorf("failed to apply filters: %w", err)
	}

	pageResult := query.Paginate(result.Rows, g.page)
	// Paginate resets an out-of-range page to 1; echo that back into state
	// so the next navigation starts from where the user actually is.
	g.page.Current = pageResult.CurrentPage
	g.page.TotalPages = pageResult.TotalPages

	return result.Rows, pageResult, nil
}

// BuildShareableURL serializes the current state into a link using the
// readable query-parameter format.
func (g *Grid) BuildShareableURL() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return urlstate.EncodeURL(g.cfg.ShareBaseURL, g.urlStateLocked(), g.page.Enabled)
}

// BuildCompactURL serializes the current state into a link using the
// compressed single-parameter format.
func (g *Grid) BuildCompactURL() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return urlstate.EncodeCompactURL(g.cfg.ShareBaseURL, g.urlStateLocked())
}

// ApplyURL restores state from a shared link. Unknown parameters and values
// that no longer match a dropdown option are ignored. Intended to run once
// right after construction.
func (g *Grid) ApplyURL(raw string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	decoded := urlstate.ParseURL(raw, g.knownColumnsLocked(), g.page.Enabled)
	g.applyStateLocked(decoded)
}

// ApplyCompactURL restores state from the compressed q parameter value.
func (g *Grid) ApplyCompactURL(encoded string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	decoded, err := urlstate.DecodeCompact(encoded)
	if err != nil {
		return fmt.Errorf("failed to restore shared state: %w", err)
	}
	g.applyStateLocked(decoded)
	return nil
}

func (g *Grid) applyStateLocked(s urlstate.State) {
	g.filters = interfaces.ActiveFilters{
		Search:  s.Search,
		Columns: make(map[int][]string),
	}
	known := make(map[string]urlstate.Column)
	for _, c := range g.knownColumnsLocked() {
		known[c.Name] = c
	}
	for name, values := range s.Columns {
		col, ok := g.columnByName(name)
		if !ok {
			continue
		}
		kc, isFilter := known[name]
		if !isFilter {
			continue
		}
		var selected []string
		for _, v := range values {
			if containsExact(kc.Options, v) {
				selected = append(selected, v)
			}
		}
		if len(selected) > 0 {
			g.filters.Columns[col] = selected
		}
	}
	if g.page.Enabled && s.Page >= 1 {
		g.page.Current = s.Page
	} else {
		g.page.Current = 1
	}
}

func (g *Grid) urlStateLocked() urlstate.State {
	s := urlstate.State{
		Search:  g.filters.Search,
		Columns: make(map[string][]string),
		Page:    g.page.Current,
	}
	for col, values := range g.filters.Columns {
		if col < 0 || col >= len(g.header) {
			continue
		}
		selected := make([]string, len(values))
		copy(selected, values)
		s.Columns[g.header[col]] = selected
	}
	return s
}

func (g *Grid) knownColumnsLocked() []urlstate.Column {
	cols := make([]urlstate.Column, 0, len(g.filterColumns))
	for _, col := range g.filterColumns {
		cols = append(cols, urlstate.Column{
			Name:    g.header[col],
			Options: g.FilterOptions(col),
		})
	}
	return cols
}

// CacheStats reports result-cache hits, misses and entry count.
func (g *Grid) CacheStats() (hits, misses int64, entries int) {
	return g.results.Stats()
}

func (g *Grid) columnByName(name string) (int, bool) {
	for i, h := range g.header {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

func (g *Grid) resetPage() {
	g.page.Current = 1
}

func containsExact(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
