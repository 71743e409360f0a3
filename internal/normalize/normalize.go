// Package normalize provides utilities for normalizing and sanitizing tabular text data.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

const bom = "\uFEFF"

// naTokens are the cell values treated as missing, matching the defaults of
// common dataframe readers so exported datasets load the same way.
//
//nolint:gochecknoglobals // Static lookup table for missing-value detection
var naTokens = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

var separators = regexp.MustCompile(`[_\-\s]+`)

// ColumnKey reduces a header name to a canonical lowercase, space-separated key.
// "Book_Title", "book-title", "BookTitle" and " BOOK TITLE " all become "book title".
func ColumnKey(raw string) string {
	s := norm.NFKC.String(sanitizeString(strings.TrimPrefix(raw, bom)))
	s = splitCamel(strings.TrimSpace(s))
	s = strings.ToLower(s)
	s = separators.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Cell trims a raw CSV cell and reports whether it holds a value.
// Empty cells and NA tokens are missing.
func Cell(raw string) (string, bool) {
	s := strings.TrimSpace(sanitizeString(strings.TrimPrefix(raw, bom)))
	if naTokens[s] {
		return "", false
	}
	return s, true
}

// Fold returns s in Unicode case-folded form for case-insensitive comparison.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether substr occurs in s, ignoring case.
// The match is literal: no pattern characters are interpreted.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// splitCamel inserts a space at lower-to-upper transitions ("BookTitle" -> "Book Title").
// Runs of capitals are left intact so "BOOK TITLE" is unchanged.
func splitCamel(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	prevLower := false
	for _, r := range s {
		if unicode.IsUpper(r) && prevLower {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
	}
	return b.String()
}

// sanitizeString removes null bytes, which some spreadsheet exports leave in cells.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, s)
}
