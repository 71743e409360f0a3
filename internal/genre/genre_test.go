package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  []string
	}{
		{"single", "Sci-Fi", []string{"Sci-Fi"}},
		{"trims whitespace", " Fantasy ,  Adventure", []string{"Fantasy", "Adventure"}},
		{"keeps empty token", "Fantasy,", []string{"Fantasy", ""}},
		{"empty field", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.field))
		})
	}
}

func TestExpand_DistinctInFirstSeenOrder(t *testing.T) {
	got := Expand([]string{"Sci-Fi, Classic", "Classic,Space Opera", "Sci-Fi"})
	assert.Equal(t, []string{"Sci-Fi", "Classic", "Space Opera"}, got)
}

func TestExpand_NoFields(t *testing.T) {
	assert.Empty(t, Expand(nil))
}

func TestMatcher(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		field  string
		want   bool
	}{
		{"exact", []string{"Sci-Fi"}, "Sci-Fi", true},
		{"case insensitive", []string{"sci-fi"}, "SCI-FI, Classic", true},
		{"substring over-match", []string{"Fiction"}, "Nonfiction", true},
		{"any token", []string{"Horror", "Romance"}, "Historical Romance", true},
		{"no match", []string{"Horror"}, "Romance", false},
		{"empty token matches everything", []string{""}, "Cookbook", true},
		{"literal parentheses", []string{"Sci-Fi (Hard)"}, "Sci-Fi (Hard), Space", true},
		{"no tokens", nil, "Romance", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMatcher(tt.tokens).Matches(tt.field))
		})
	}
}
