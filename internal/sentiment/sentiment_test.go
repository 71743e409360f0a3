package sentiment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookrec/internal/domain"
)

// fixedAnalyzer returns a constant and records what it was asked to score.
type fixedAnalyzer struct {
	value float64
	seen  []string
}

func (f *fixedAnalyzer) Polarity(text string) float64 {
	f.seen = append(f.seen, text)
	return f.value
}

func TestScore_PreservesOrderAndFields(t *testing.T) {
	reviews := []domain.Review{
		{BookName: "Dune", Text: "great book"},
		{BookName: "Emma", Text: ""},
		{BookName: "Dune", Text: "fine"},
	}

	scored := NewScorer(&fixedAnalyzer{value: 0.5}).Score(reviews)

	require.Len(t, scored, len(reviews))
	for i, r := range reviews {
		assert.Equal(t, r, scored[i].Review)
	}
	assert.InDelta(t, 0.5, scored[0].SentimentScore, 0)
	assert.Zero(t, scored[1].SentimentScore)
	assert.InDelta(t, 0.5, scored[2].SentimentScore, 0)
}

func TestScore_Empty(t *testing.T) {
	assert.Empty(t, NewScorer(&fixedAnalyzer{}).Score(nil))
}

func TestPolarity_MissingTextIsZero(t *testing.T) {
	a := &fixedAnalyzer{value: 0.9}
	s := NewScorer(a)

	assert.Zero(t, s.Polarity(""))
	assert.Zero(t, s.Polarity("   "))
	assert.Empty(t, a.seen, "analyzer must not run on missing text")
}

func TestPolarity_Clamps(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"in range", -0.25, -0.25},
		{"above", 3, 1},
		{"below", -7, -1},
		{"nan", math.NaN(), 0},
		{"positive infinity", math.Inf(1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewScorer(&fixedAnalyzer{value: tt.value}).Polarity("text")
			assert.InDelta(t, tt.want, got, 0)
		})
	}
}

func TestPolarity_FlattensHTML(t *testing.T) {
	a := &fixedAnalyzer{}
	NewScorer(a).Polarity("<p>great <b>book</b></p>")

	require.Len(t, a.seen, 1)
	assert.Equal(t, "great book", a.seen[0])
}

func TestPolarity_LeavesPlainTextAlone(t *testing.T) {
	a := &fixedAnalyzer{}
	NewScorer(a).Polarity("  5 < 6 and that's fine ")

	require.Len(t, a.seen, 1)
	assert.Equal(t, "5 < 6 and that's fine", a.seen[0])
}

func TestVader(t *testing.T) {
	s := NewScorer(nil)

	pos := s.Polarity("What a great, wonderful book. I loved it!")
	neg := s.Polarity("Terrible and boring. I hated it.")

	assert.Positive(t, pos)
	assert.Negative(t, neg)
	assert.LessOrEqual(t, pos, 1.0)
	assert.GreaterOrEqual(t, neg, -1.0)

	assert.InDelta(t, pos, s.Polarity("What a great, wonderful book. I loved it!"), 0, "deterministic")
}
