// Package catalog loads and cleans the books and reviews datasets.
package catalog

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/listenupapp/bookrec/internal/config"
	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/metrics"
)

// Loader reads the datasets from disk. It never returns an error: any
// structural failure yields a degraded catalog with both tables empty.
type Loader struct {
	data   config.DataConfig
	logger *logger.Logger
}

// NewLoader creates a loader resolving dataset paths from data.
func NewLoader(data config.DataConfig, log *logger.Logger) *Loader {
	return &Loader{data: data, logger: log.WithComponent("catalog")}
}

// Load reads the configured books and reviews files.
func (l *Loader) Load(ctx context.Context) *domain.Catalog {
	return l.LoadCatalog(ctx, l.data.BooksPath(), l.data.ReviewsPath())
}

// LoadCatalog reads and cleans the two tables. Every call re-reads the files.
func (l *Loader) LoadCatalog(ctx context.Context, booksPath, reviewsPath string) *domain.Catalog {
	if err := ctx.Err(); err != nil {
		return l.degrade(err)
	}

	books, bookStats, err := readFile(booksPath, ReadBooks)
	if err != nil {
		return l.degrade(fmt.Errorf("books %s: %w", booksPath, err))
	}

	if err := ctx.Err(); err != nil {
		return l.degrade(err)
	}

	reviews, reviewStats, err := readFile(reviewsPath, ReadReviews)
	if err != nil {
		return l.degrade(fmt.Errorf("reviews %s: %w", reviewsPath, err))
	}

	if bookStats.BadRating > 0 {
		l.logger.Debug("dropped books with unusable rating", "count", bookStats.BadRating)
	}
	l.logger.Debug("catalog loaded",
		"books", len(books),
		"book_duplicates", bookStats.Duplicates,
		"reviews", len(reviews),
		"review_duplicates", reviewStats.Duplicates,
	)

	return &domain.Catalog{Books: books, Reviews: reviews, Status: domain.LoadStatusLoaded}
}

// Check reports whether both dataset files can be opened.
func (l *Loader) Check() error {
	for _, path := range []string{l.data.BooksPath(), l.data.ReviewsPath()} {
		f, err := os.Open(path) //#nosec G304 -- dataset path comes from configuration
		if err != nil {
			return err
		}
		f.Close()
	}
	return nil
}

func (l *Loader) degrade(err error) *domain.Catalog {
	l.logger.Error("catalog load failed, continuing with empty catalog", "error", err)
	metrics.RecordCatalogLoadFailure()
	return domain.NewDegradedCatalog(err)
}

func readFile[T any](path string, parse func(io.Reader) ([]T, ReadStats, error)) ([]T, ReadStats, error) {
	f, err := os.Open(path) //#nosec G304 -- dataset path comes from configuration
	if err != nil {
		return nil, ReadStats{}, err
	}
	defer f.Close()
	return parse(f)
}
