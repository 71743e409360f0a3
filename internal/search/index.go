package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/listenupapp/bookrec/internal/domain"
)

// TitleIndex is a memory-only index of distinct catalog titles.
// It is built once and then only read.
type TitleIndex struct {
	index bleve.Index
}

// NewTitleIndex indexes every named book. Duplicate titles are indexed once.
func NewTitleIndex(books []domain.Book) (*TitleIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	batch := index.NewBatch()
	for _, b := range books {
		if !b.HasName() {
			continue
		}
		// Title doubles as the document ID, so duplicates collapse.
		if err := batch.Index(b.Name, NewTitleDocument(b).ToMap()); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("index %q: %w", b.Name, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("apply batch: %w", err)
	}

	return &TitleIndex{index: index}, nil
}

// DocumentCount returns the number of indexed titles.
func (t *TitleIndex) DocumentCount() (uint64, error) {
	return t.index.DocCount()
}

// Close releases the index.
func (t *TitleIndex) Close() error {
	return t.index.Close()
}

// Closest returns up to limit titles ranked by relevance to q.
func (t *TitleIndex) Closest(ctx context.Context, q string, limit int) ([]string, error) {
	q = strings.TrimSpace(q)
	if q == "" || limit <= 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(buildTitleQuery(q), limit, 0, false)
	res, err := t.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	titles := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		titles = append(titles, hit.ID)
	}
	return titles, nil
}

// buildTitleQuery ORs a fuzzy word match with a prefix match on the title.
func buildTitleQuery(q string) query.Query {
	textQueries := []query.Query{}

	nameMatch := bleve.NewMatchQuery(q)
	nameMatch.SetField("name")
	nameMatch.SetFuzziness(1)
	nameMatch.SetBoost(3.0)
	textQueries = append(textQueries, nameMatch)

	// Prefix query for partially typed titles (minimum 2 chars)
	if len(q) >= 2 {
		prefixQuery := bleve.NewPrefixQuery(strings.ToLower(q))
		prefixQuery.SetField("name")
		prefixQuery.SetBoost(0.5)
		textQueries = append(textQueries, prefixQuery)
	}

	return bleve.NewDisjunctionQuery(textQueries...)
}
