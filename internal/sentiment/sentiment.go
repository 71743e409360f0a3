// Package sentiment scores free-text reviews with a lexicon-based polarity analyzer.
package sentiment

import (
	"math"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/jonreiter/govader"

	"github.com/listenupapp/bookrec/internal/domain"
)

// Analyzer returns a polarity for a non-empty text.
type Analyzer interface {
	Polarity(text string) float64
}

// vader adapts govader to Analyzer using the compound score.
type vader struct {
	sia *govader.SentimentIntensityAnalyzer
}

func (v vader) Polarity(text string) float64 {
	return v.sia.PolarityScores(text).Compound
}

// NewVaderAnalyzer returns the default English lexicon analyzer.
func NewVaderAnalyzer() Analyzer {
	return vader{sia: govader.NewSentimentIntensityAnalyzer()}
}

// Scorer attaches a polarity in [-1, 1] to each review.
type Scorer struct {
	analyzer Analyzer
}

// NewScorer creates a scorer. A nil analyzer selects the VADER lexicon.
func NewScorer(a Analyzer) *Scorer {
	if a == nil {
		a = NewVaderAnalyzer()
	}
	return &Scorer{analyzer: a}
}

// Score returns one ScoredReview per input, in input order.
func (s *Scorer) Score(reviews []domain.Review) []domain.ScoredReview {
	out := make([]domain.ScoredReview, len(reviews))
	for i, r := range reviews {
		out[i] = domain.ScoredReview{Review: r, SentimentScore: s.Polarity(r.Text)}
	}
	return out
}

// Polarity scores a single text. Missing text scores exactly 0.
func (s *Scorer) Polarity(text string) float64 {
	text = plainText(text)
	if text == "" {
		return 0
	}
	return clamp(s.analyzer.Polarity(text))
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}

// htmlTagPattern matches common HTML tags to detect if a review contains markup.
var htmlTagPattern = regexp.MustCompile(`<(p|br|div|span|b|i|strong|em|a|ul|ol|li|h[1-6]|blockquote)[\s>/]`)

var markdownEmphasis = strings.NewReplacer("**", "", "__", "")

// plainText flattens HTML reviews so tags do not reach the lexicon.
// Text without HTML is returned trimmed.
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !htmlTagPattern.MatchString(strings.ToLower(s)) {
		return s
	}

	markdown, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return s
	}

	return strings.TrimSpace(markdownEmphasis.Replace(markdown))
}
