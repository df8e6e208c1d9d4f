// Package match provides the literal, case-insensitive matching used to
// filter picker rows and the bash-style prefix completion used by Tab.
package match

import (
	"strings"
	"unicode/utf8"
)

// Item is a display name prepared for repeated matching against a query.
type Item struct {
	Text      string
	TextLower string
}

// New prepares text for matching.
func New(text string) Item {
	return Item{
		Text:      text,
		TextLower: strings.ToLower(text),
	}
}

// Matches reports whether the already lower-cased query is contained in the item.
func (i Item) Matches(queryLower string) bool {
	return strings.Contains(i.TextLower, queryLower)
}

// Contains reports whether query occurs in text, ignoring case.
// The empty query matches everything. It is the one-off form of Item.Matches,
// which list rows use with their lower-cased text prepared once.
func Contains(query, text string) bool {
	return New(text).Matches(strings.ToLower(query))
}

// Complete computes the Tab completion of query over names.
//
// Only names starting with query (ignoring case) take part. A single such
// name is returned whole. Several names complete to their longest common
// prefix, which is reported only when it is non-empty and differs from query.
func Complete(query string, names []string) (string, bool) {
	queryLower := strings.ToLower(query)

	var candidates []string
	for _, name := range names {
		if strings.HasPrefix(strings.ToLower(name), queryLower) {
			candidates = append(candidates, name)
		}
	}

	switch len(candidates) {
	case 0:
		return "", false
	case 1:
		return candidates[0], true
	}

	common := candidates[0]
	for _, name := range candidates[1:] {
		for common != "" && !strings.HasPrefix(name, common) {
			_, size := utf8.DecodeLastRuneInString(common)
			common = common[:len(common)-size]
		}
		if common == "" {
			break
		}
	}

	if common == "" || common == query {
		return "", false
	}
	return common, true
}
