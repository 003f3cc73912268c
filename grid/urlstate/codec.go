// Package urlstate serializes the widget's filter, search and page state to
// URL query parameters and back. The parameter format is part of the
// widget's public contract: search=<string>, one repeated parameter per
// column keyed by the column's display name, and page=<n>.
package urlstate

import (
	"net/url"
	"strconv"
)

// State is the URL-visible portion of the widget state. Column filters are
// keyed by column display name, not index, so links stay readable and
// survive column reordering.
type State struct {
	Search  string
	Columns map[string][]string
	Page    int
}

// Column describes one known column filter for decoding: its display name
// and the dropdown options a URL value must match exactly.
type Column struct {
	Name    string
	Options []string
}

// Encode serializes the state to query parameters. The search parameter is
// present only when non-empty; each selected column value becomes one
// repeated parameter under the column's display name; page appears only
// beyond page 1 and only when pagination is enabled.
func Encode(s State, paginationEnabled bool) url.Values {
	values := url.Values{}
	if s.Search != "" {
		values.Set("search", s.Search)
	}
	for name, selected := range s.Columns {
		for _, v := range selected {
			values.Add(name, v)
		}
	}
	if paginationEnabled && s.Page > 1 {
		values.Set("page", strconv.Itoa(s.Page))
	}
	return values
}

// EncodeURL builds a full shareable URL from a base address.
func EncodeURL(base string, s State, paginationEnabled bool) string {
	q := Encode(s, paginationEnabled).Encode()
	if q == "" {
		return base
	}
	return base + "?" + q
}

// Decode reads state from query parameters. Applied once at initialization.
//
// The search value is taken verbatim. page is clamped to at least 1 and only
// honored when pagination is enabled. Every other key is matched against the
// known column filters; values that match an existing dropdown option
// exactly are added to that column's selection. Unknown keys and unknown
// values are ignored silently.
func Decode(values url.Values, columns []Column, paginationEnabled bool) State {
	s := State{
		Search:  values.Get("search"),
		Columns: make(map[string][]string),
		Page:    1,
	}

	if paginationEnabled {
		if raw := values.Get("page"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
				s.Page = n
			}
		}
	}

	byName := make(map[string]Column, len(columns))
	for _, c := range columns {
		byName[c.Name] = c
	}

	for key, vals := range values {
		if key == "search" || key == "page" {
			continue
		}
		col, known := byName[key]
		if !known {
			continue
		}
		for _, v := range vals {
			if containsExact(col.Options, v) && !containsExact(s.Columns[key], v) {
				s.Columns[key] = append(s.Columns[key], v)
			}
		}
	}

	return s
}

// ParseURL decodes state from a full URL string. A malformed URL degrades to
// the empty state rather than an error.
func ParseURL(raw string, columns []Column, paginationEnabled bool) State {
	u, err := url.Parse(raw)
	if err != nil {
		return State{Columns: make(map[string][]string), Page: 1}
	}
	return Decode(u.Query(), columns, paginationEnabled)
}

func containsExact(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
