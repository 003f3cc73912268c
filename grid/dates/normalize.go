package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// D[./-]M[./-]YYYY with 1-2 digit day and month
	dayFirstRe = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{4})$`)
	// YYYY[./-]M[./-]D
	yearFirstRe = regexp.MustCompile(`^(\d{4})[./-](\d{1,2})[./-](\d{1,2})$`)

	tagRe       = regexp.MustCompile(`<[^>]*>`)
	lineBreakRe = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// CleanMarkup reduces a cell's raw markup to the date-bearing text: the
// content before the first line-break marker, with non-breaking-space
// entities replaced by literal spaces and any remaining tags stripped.
func CleanMarkup(raw string) string {
	s := raw
	if loc := lineBreakRe.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, " ", " ")
	s = tagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Normalize converts a cell's raw markup to a sortable ISO date string.
// Format recognition, in precedence order:
//  1. D[./-]M[./-]YYYY (day-month-year)
//  2. YYYY[./-]M[./-]D
//  3. Generic date-string parse across common layouts
//
// Returns ok=false when no format matches; the cell then has no date value
// and falls back to text/numeric ordering downstream.
func Normalize(raw string) (string, bool) {
	s := CleanMarkup(raw)
	if s == "" {
		return "", false
	}

	if m := dayFirstRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if validDate(year, month, day) {
			return formatISO(year, month, day), true
		}
		return "", false
	}

	if m := yearFirstRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if validDate(year, month, day) {
			return formatISO(year, month, day), true
		}
		return "", false
	}

	if t, ok := parseGeneric(s); ok {
		return t.Format("2006-01-02"), true
	}

	return "", false
}

// parseGeneric tries a sequence of common date layouts and returns the first
// successful parse. Layouts are attempted in order, most specific first.
func parseGeneric(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02 15:04", s); err == nil {
		return t, true
	}
	if t, err := time.Parse("January 2, 2006", s); err == nil {
		return t, true
	}
	if t, err := time.Parse("Jan 2, 2006", s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2 January 2006", s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2 Jan 2006", s); err == nil {
		return t, true
	}
	if t, err := time.Parse("Mon, 2 Jan 2006", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func validDate(year, month, day int) bool {
	return year >= 1 && month >= 1 && month <= 12 && day >= 1 && day <= 31
}

func formatISO(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
