// Package htmltable locates a table in HTML markup and extracts its header
// and body cells. It is the only place in the module that touches markup;
// everything downstream operates on the cached row model.
package htmltable

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// CellData carries both views of a table cell: the raw inner markup (needed
// by the date normalizer, which inspects line breaks and entities) and the
// plain text with whitespace already collapsed.
type CellData struct {
	Markup string
	Text   string
}

// Table is the extracted structure of one HTML table.
type Table struct {
	Header []string     // Header cell texts, in column order
	Rows   [][]CellData // Body rows; may be empty when the table has no tbody
}

// Parse reads HTML from r and extracts the first table, or the table with the
// given id when id is non-empty. A document without a matching table is a
// configuration error; a matching table without body rows is not.
func Parse(r io.Reader, id string) (*Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	node := findTable(doc, id)
	if node == nil {
		if id != "" {
			return nil, fmt.Errorf("table %q not found", id)
		}
		return nil, fmt.Errorf("no table found in markup")
	}

	return FromNode(node), nil
}

// ParseString is a convenience wrapper over Parse.
func ParseString(markup string, id string) (*Table, error) {
	return Parse(strings.NewReader(markup), id)
}

// FromNode extracts the table structure from an already-located table node.
// A missing thead falls back to promoting an all-th first body row; a missing
// tbody yields zero body rows rather than an error. Note the HTML5 parser
// wraps bare tr children in an implicit tbody, so body rows are collected
// from both tbody elements and direct children.
func FromNode(table *html.Node) *Table {
	t := &Table{}

	if thead := findChild(table, "thead"); thead != nil {
		if tr := firstElement(thead, "tr"); tr != nil {
			t.Header = cellTexts(tr)
		}
	}

	collect := func(parent *html.Node) {
		for tr := firstElement(parent, "tr"); tr != nil; tr = nextElement(tr, "tr") {
			if t.Header == nil && len(t.Rows) == 0 && isHeaderRow(tr) {
				t.Header = cellTexts(tr)
				continue
			}
			t.Rows = append(t.Rows, cells(tr))
		}
	}

	bodySeen := false
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "tbody" {
			bodySeen = true
			collect(c)
		}
	}
	if !bodySeen {
		collect(table)
	}

	return t
}

// attr returns the value of the named attribute on n, or "" if absent.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// findTable walks the document for a table element, optionally matching an id.
func findTable(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		if id == "" || attr(n, "id") == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTable(c, id); found != nil {
			return found
		}
	}
	return nil
}

// findChild returns the first descendant element with the given name that is
// not nested inside another table.
func findChild(n *html.Node, name string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if c.Data == name {
				return c
			}
			if c.Data == "table" {
				continue
			}
			if found := findChild(c, name); found != nil {
				return found
			}
		}
	}
	return nil
}

func firstElement(parent *html.Node, name string) *html.Node {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == name {
			return c
		}
	}
	return nil
}

func nextElement(n *html.Node, name string) *html.Node {
	for c := n.NextSibling; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == name {
			return c
		}
	}
	return nil
}

// cells extracts td/th cells from a row in order.
func cells(tr *html.Node) []CellData {
	var out []CellData
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			out = append(out, CellData{
				Markup: innerHTML(c),
				Text:   CollapseWhitespace(textContent(c)),
			})
		}
	}
	return out
}

func cellTexts(tr *html.Node) []string {
	cs := cells(tr)
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Text
	}
	return out
}

// isHeaderRow reports whether every cell in the row is a th element.
func isHeaderRow(tr *html.Node) bool {
	seen := false
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "th":
			seen = true
		case "td":
			return false
		}
	}
	return seen
}

// innerHTML renders the children of a node back to markup.
func innerHTML(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		html.Render(&sb, c)
	}
	return sb.String()
}

// textContent concatenates all text nodes beneath n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// CollapseWhitespace trims the string and collapses internal whitespace runs
// to single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
