// Package recommend ranks books for a title query by blending rating and review sentiment.
package recommend

import (
	"cmp"
	"context"
	"slices"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/genre"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/metrics"
	"github.com/listenupapp/bookrec/internal/normalize"
)

// Sink receives every ranked list before it is returned.
type Sink interface {
	Write(entries []domain.RecommendationEntry) error
}

// Config holds the score blend weights.
type Config struct {
	RatingWeight    float64
	SentimentWeight float64
}

// DefaultConfig returns the standard 0.7 rating / 0.3 sentiment blend.
func DefaultConfig() Config {
	return Config{RatingWeight: 0.7, SentimentWeight: 0.3}
}

// Engine produces ranked recommendation lists.
type Engine struct {
	cfg    Config
	sink   Sink
	logger *logger.Logger
}

// NewEngine creates an engine. sink may be nil, in which case results are not persisted.
func NewEngine(cfg Config, sink Sink, log *logger.Logger) *Engine {
	return &Engine{cfg: cfg, sink: sink, logger: log.WithComponent("recommend")}
}

// Recommend ranks books for query and writes the result to the sink.
// It always returns a list, possibly empty. A sink failure is logged, not returned.
func (e *Engine) Recommend(ctx context.Context, query string, books []domain.Book, reviews []domain.ScoredReview, topN int) []domain.RecommendationEntry {
	log := logger.FromContext(ctx, e.logger)

	entries := e.Rank(query, books, reviews, topN)

	if e.sink != nil {
		if err := e.sink.Write(entries); err != nil {
			log.Error("failed to persist recommendations", "error", err, "count", len(entries))
			metrics.RecordStoreWriteError()
		}
	}

	log.Debug("recommendations ranked", "query", query, "results", len(entries))
	return entries
}

type candidate struct {
	book      domain.Book
	sentiment float64
	final     float64
}

// Rank computes the recommendation list without side effects.
//
// Books whose title contains query (case-insensitive, literal) come first in
// catalog order, unscored. The remaining slots go to books sharing a genre
// token with any match, ordered by final score with ties kept in catalog order.
func (e *Engine) Rank(query string, books []domain.Book, reviews []domain.ScoredReview, topN int) []domain.RecommendationEntry {
	result := []domain.RecommendationEntry{}
	if topN <= 0 {
		return result
	}

	matched := titleMatches(query, books)
	if len(matched) == 0 {
		return result
	}

	for _, b := range matched {
		if len(result) == topN {
			return result
		}
		result = append(result, domain.RecommendationEntry{Book: b.WithDefaults()})
	}

	slots := topN - len(matched)
	if slots <= 0 {
		return result
	}

	// A missing genre contributes no tokens and never matches.
	genres := make([]string, 0, len(matched))
	matchedNames := make(map[string]struct{}, len(matched))
	for _, b := range matched {
		if b.Genre != "" {
			genres = append(genres, b.Genre)
		}
		matchedNames[b.Name] = struct{}{}
	}
	matcher := genre.NewMatcher(genre.Expand(genres))
	sentiment := MeanSentiment(reviews)

	var pool []candidate
	for _, b := range books {
		if _, ok := matchedNames[b.Name]; ok {
			continue
		}
		if b.Genre == "" || !matcher.Matches(b.Genre) {
			continue
		}
		s := sentiment[b.Name]
		pool = append(pool, candidate{
			book:      b,
			sentiment: s,
			final:     e.FinalScore(b.Rating, s),
		})
	}

	// NaN scores sort last.
	slices.SortStableFunc(pool, func(a, b candidate) int {
		return cmp.Compare(b.final, a.final)
	})

	for _, c := range pool[:min(slots, len(pool))] {
		s, f := c.sentiment, c.final
		result = append(result, domain.RecommendationEntry{
			Book:           c.book.WithDefaults(),
			SentimentScore: &s,
			FinalScore:     &f,
		})
	}
	return result
}

// FinalScore blends a rating with a mean sentiment.
func (e *Engine) FinalScore(rating, sentiment float64) float64 {
	return rating*e.cfg.RatingWeight + sentiment*e.cfg.SentimentWeight
}

// MeanSentiment averages review scores per book name.
// Books absent from the result have no reviews and score 0.
func MeanSentiment(reviews []domain.ScoredReview) map[string]float64 {
	type acc struct {
		sum float64
		n   int
	}
	groups := make(map[string]*acc)
	for _, r := range reviews {
		g, ok := groups[r.BookName]
		if !ok {
			g = &acc{}
			groups[r.BookName] = g
		}
		g.sum += r.SentimentScore
		g.n++
	}

	out := make(map[string]float64, len(groups))
	for name, g := range groups {
		out[name] = g.sum / float64(g.n)
	}
	return out
}

// titleMatches returns books whose name contains query, in catalog order.
// Books without a name never match.
func titleMatches(query string, books []domain.Book) []domain.Book {
	var out []domain.Book
	for _, b := range books {
		if b.HasName() && normalize.ContainsFold(b.Name, query) {
			out = append(out, b)
		}
	}
	return out
}
