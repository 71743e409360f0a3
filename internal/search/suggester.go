package search

import (
	"context"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/logger"
)

// Suggester offers "did you mean" titles when a query matches nothing.
type Suggester struct {
	logger *logger.Logger
}

// NewSuggester creates a suggester.
func NewSuggester(log *logger.Logger) *Suggester {
	return &Suggester{logger: log.WithComponent("search")}
}

// Suggest indexes books and returns up to limit titles close to query.
// The index lives only for the duration of the call, so suggestions always
// reflect the catalog the caller just loaded. Failures yield no suggestions.
func (s *Suggester) Suggest(ctx context.Context, books []domain.Book, query string, limit int) []string {
	if limit <= 0 || len(books) == 0 {
		return []string{}
	}

	idx, err := NewTitleIndex(books)
	if err != nil {
		s.logger.Warn("failed to build title index", "error", err)
		return []string{}
	}
	defer idx.Close()

	titles, err := idx.Closest(ctx, query, limit)
	if err != nil {
		s.logger.Warn("title suggestion search failed", "query", query, "error", err)
		return []string{}
	}
	if titles == nil {
		return []string{}
	}
	return titles
}
