// Package genre splits comma-separated genre fields into tokens and matches them against books.
package genre

import (
	"strings"

	"github.com/listenupapp/bookrec/internal/normalize"
)

// Split breaks a genre field on commas and trims each token.
// Empty tokens are kept: "Fantasy," yields ["Fantasy", ""].
func Split(field string) []string {
	parts := strings.Split(field, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Expand collects the distinct tokens of all fields in first-seen order.
func Expand(fields []string) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, f := range fields {
		for _, tok := range Split(f) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Matcher tests genre fields against a fixed token set.
type Matcher struct {
	folded []string
}

// NewMatcher prepares a matcher for tokens.
func NewMatcher(tokens []string) *Matcher {
	folded := make([]string, len(tokens))
	for i, t := range tokens {
		folded[i] = normalize.Fold(t)
	}
	return &Matcher{folded: folded}
}

// Matches reports whether field contains any token as a case-insensitive
// substring. "Fiction" matches both "Science Fiction" and "Nonfiction",
// and an empty token matches every field.
func (m *Matcher) Matches(field string) bool {
	f := normalize.Fold(field)
	for _, tok := range m.folded {
		if strings.Contains(f, tok) {
			return true
		}
	}
	return false
}
