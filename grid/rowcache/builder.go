// Package rowcache builds the canonical row model from an extracted table.
// The cache is built once at widget construction and never rebuilt; all
// filtering, sorting and pagination operate on it, and the displayed table is
// a projection of it.
package rowcache

import (
	"encoding/hex"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/minio/highwayhash"
	"golang.org/x/text/collate"

	"tablegrid/grid/dates"
	"tablegrid/grid/htmltable"
	"tablegrid/grid/interfaces"
)

// hashKey seeds the table content hash used as the pipeline cache key root.
// The hash only needs to distinguish tables within one process, so a fixed
// key is fine.
var hashKey = []byte("tablegrid-row-cache-hash-key-001")

var nonNumericRe = regexp.MustCompile(`[^0-9.\-]`)

// Cache is the built row model plus the per-column metadata the widget needs
// for dropdowns and cache keying.
type Cache struct {
	Rows         []*interfaces.Row
	UniqueValues [][]string // Sorted unique display values per column
	ColumnCount  int
	Hash         string // Content hash, root of all pipeline cache keys
}

// Build scans every body row of the table once, pre-parsing text, numeric and
// date values per cell. dateColumns flags which columns receive date
// normalization; for those, the cached display text is replaced by the
// normalized ISO form when a supported format matches. The collator orders
// the unique value lists when values are not both integers.
//
// A table with no body rows produces an empty cache, not an error.
func Build(tbl *htmltable.Table, dateColumns []bool, coll *collate.Collator) *Cache {
	cols := len(tbl.Header)
	for _, row := range tbl.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	c := &Cache{
		Rows:         make([]*interfaces.Row, 0, len(tbl.Rows)),
		UniqueValues: make([][]string, cols),
		ColumnCount:  cols,
	}

	seen := make([]map[string]bool, cols)
	for i := range seen {
		seen[i] = make(map[string]bool)
	}

	hasher, _ := highwayhash.New(hashKey)
	for _, h := range tbl.Header {
		hasher.Write([]byte(h))
		hasher.Write([]byte{0})
	}

	for i, src := range tbl.Rows {
		row := &interfaces.Row{
			RowIndex:     i,
			DisplayIndex: -1,
			Cells:        make([]interfaces.Cell, len(src)),
		}
		texts := make([]string, len(src))

		for j, cd := range src {
			cell := buildCell(cd, j < len(dateColumns) && dateColumns[j])
			row.Cells[j] = cell
			texts[j] = cell.Text

			if cell.Text != "" && !seen[j][cell.Text] {
				seen[j][cell.Text] = true
				c.UniqueValues[j] = append(c.UniqueValues[j], cell.Text)
			}

			hasher.Write([]byte(cell.Text))
			hasher.Write([]byte{0})
		}

		row.FullText = strings.Join(texts, " ")
		row.FullLower = strings.ToLower(row.FullText)
		c.Rows = append(c.Rows, row)
	}

	for j := range c.UniqueValues {
		sortValues(c.UniqueValues[j], coll)
	}

	c.Hash = hex.EncodeToString(hasher.Sum(nil))
	return c
}

// buildCell normalizes one cell. Numeric parsing strips every character
// outside [0-9.-] before the float parse; a non-finite result counts as not
// numeric. Date parsing runs only for flagged columns and rewrites the
// display text on success.
func buildCell(cd htmltable.CellData, dateColumn bool) interfaces.Cell {
	cell := interfaces.Cell{Text: cd.Text}

	if dateColumn {
		if iso, ok := dates.Normalize(cd.Markup); ok {
			cell.Text = iso
			cell.DateISO = iso
		}
	}

	cleaned := nonNumericRe.ReplaceAllString(cell.Text, "")
	if cleaned != "" {
		if v, err := strconv.ParseFloat(cleaned, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			cell.Numeric = v
			cell.HasNumeric = true
		}
	}

	cell.LowerText = strings.ToLower(cell.Text)
	return cell
}

// sortValues orders a unique-value list with the numeric-aware comparator:
// two values that both parse as integers compare numerically, everything
// else compares as collated strings.
func sortValues(values []string, coll *collate.Collator) {
	sort.SliceStable(values, func(i, j int) bool {
		a, aErr := strconv.Atoi(values[i])
		b, bErr := strconv.Atoi(values[j])
		if aErr == nil && bErr == nil {
			return a < b
		}
		if coll != nil {
			return coll.CompareString(values[i], values[j]) < 0
		}
		return values[i] < values[j]
	})
}
