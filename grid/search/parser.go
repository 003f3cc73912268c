// Package search parses free-text queries into AND-groups of OR-terms plus
// exact-phrase requirements, and evaluates them against a row's full
// lowercased text.
//
// Query grammar: double-quoted substrings are exact phrases; the word AND
// (any case, surrounded by whitespace) separates groups; whitespace separates
// OR-terms within a group. A row matches iff every exact phrase occurs as a
// substring AND every group has at least one of its terms present.
package search

import (
	"fmt"
	"regexp"
	"strings"
)

var phraseRe = regexp.MustCompile(`"([^"]*)"`)

// Query is the parsed form of a free-text search.
type Query struct {
	Groups  [][]string // AND-groups of lowercased OR-terms
	Phrases []string   // Lowercased exact phrases, in order of appearance
}

// Parse decomposes a raw query string into a Query.
//
// Quoted substrings are extracted first and replaced with placeholder tokens
// so the AND/whitespace splitting cannot break them apart; the placeholders
// are restored to their phrase values inside the groups afterwards. Unmatched
// quote characters are left in place and treated as literal text. Empty
// groups and terms are dropped.
func Parse(raw string) Query {
	var q Query

	// Extract quoted phrases, substituting opaque placeholders.
	rest := phraseRe.ReplaceAllStringFunc(raw, func(m string) string {
		phrase := strings.ToLower(m[1 : len(m)-1])
		idx := len(q.Phrases)
		q.Phrases = append(q.Phrases, phrase)
		return placeholder(idx)
	})

	// Walk whitespace-separated tokens; a bare AND token (any case) closes
	// the current group.
	var group []string
	flush := func() {
		if len(group) > 0 {
			q.Groups = append(q.Groups, group)
			group = nil
		}
	}
	for _, tok := range strings.Fields(rest) {
		if strings.EqualFold(tok, "and") {
			flush()
			continue
		}
		term := strings.ToLower(restorePlaceholders(tok, q.Phrases))
		if term != "" {
			group = append(group, term)
		}
	}
	flush()

	// Drop empty phrases; they were only needed to keep placeholder indices
	// stable while restoring groups.
	kept := q.Phrases[:0]
	for _, p := range q.Phrases {
		if p != "" {
			kept = append(kept, p)
		}
	}
	q.Phrases = kept

	return q
}

// IsEmpty reports whether the query imposes no constraint.
func (q Query) IsEmpty() bool {
	return len(q.Groups) == 0 && len(q.Phrases) == 0
}

// Match evaluates the query against a row's full lowercased text.
// An empty query matches everything.
func (q Query) Match(fullLower string) bool {
	for _, phrase := range q.Phrases {
		if !strings.Contains(fullLower, phrase) {
			return false
		}
	}
	for _, group := range q.Groups {
		matched := false
		for _, term := range group {
			if strings.Contains(fullLower, term) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// CacheKey returns a canonical string form of the parsed query, suitable for
// composing pipeline cache keys.
func (q Query) CacheKey() string {
	if q.IsEmpty() {
		return ""
	}
	groups := make([]string, len(q.Groups))
	for i, g := range q.Groups {
		groups[i] = strings.Join(g, ",")
	}
	return fmt.Sprintf("g=%s;p=%s", strings.Join(groups, "|"), strings.Join(q.Phrases, "|"))
}

// placeholder builds an opaque token that survives whitespace splitting.
// The NUL bytes cannot appear in user input that arrived through a text field.
func placeholder(idx int) string {
	return fmt.Sprintf("\x00%d\x00", idx)
}

var placeholderRe = regexp.MustCompile("\x00(\\d+)\x00")

// restorePlaceholders substitutes every placeholder occurrence in a token
// with its extracted phrase value.
func restorePlaceholders(tok string, phrases []string) string {
	if !strings.ContainsRune(tok, '\x00') {
		return tok
	}
	return placeholderRe.ReplaceAllStringFunc(tok, func(m string) string {
		idx := 0
		for _, c := range m[1 : len(m)-1] {
			idx = idx*10 + int(c-'0')
		}
		if idx < len(phrases) {
			return phrases[idx]
		}
		return ""
	})
}
