package dates

import (
	"strings"
)

// IsDateHeader reports whether a column header implies date content.
// A column is classified as a date column iff its header text contains the
// substring "date" case-insensitively. Classification is static and done once
// before the row cache is built.
func IsDateHeader(name string) bool {
	return strings.Contains(strings.ToLower(name), "date")
}

// DetectDateColumns classifies every header and returns a per-column flag
// slice aligned with the header.
func DetectDateColumns(header []string) []bool {
	flags := make([]bool, len(header))
	for i, h := range header {
		flags[i] = IsDateHeader(h)
	}
	return flags
}
