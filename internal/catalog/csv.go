package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/normalize"
)

// Canonical column keys after header normalization.
const (
	colBookTitle         = "book title"
	colBookName          = "book name"
	colGenre             = "genre"
	colRating            = "rating"
	colReviewDescription = "review description"
)

var (
	// ErrEmptySource is returned when a CSV source has no header row.
	ErrEmptySource = errors.New("source has no header row")
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")
)

// ReadStats reports how many rows were discarded while reading a table.
type ReadStats struct {
	Rows       int // Data rows in the source
	BadRating  int // Rows dropped for a missing or non-numeric rating
	Duplicates int // Exact duplicates removed
}

// header maps canonical column keys to their first position in the row.
type header map[string]int

// readHeader also returns the header width, which bounds every data row.
func readHeader(r *csv.Reader) (header, int, error) {
	row, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, ErrEmptySource
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	h := make(header, len(row))
	for i, cell := range row {
		key := normalize.ColumnKey(cell)
		if _, dup := h[key]; !dup {
			h[key] = i
		}
	}
	return h, len(row), nil
}

// find returns the index of the first present key.
func (h header) find(keys ...string) (int, bool) {
	for _, k := range keys {
		if i, ok := h[k]; ok {
			return i, true
		}
	}
	return 0, false
}

func (h header) require(keys ...string) (int, error) {
	if i, ok := h.find(keys...); ok {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrMissingColumn, keys[0])
}

func newReader(src io.Reader) *csv.Reader {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true
	return r
}

// cell returns the cleaned value at i; short rows read as missing.
func cell(row []string, i int) (string, bool) {
	if i >= len(row) {
		return "", false
	}
	return normalize.Cell(row[i])
}

// checkWidth rejects rows wider than the header, which indicates a malformed file.
func checkWidth(r *csv.Reader, row []string, width int) error {
	if len(row) > width {
		line, _ := r.FieldPos(0)
		return fmt.Errorf("line %d: expected at most %d fields, saw %d", line, width, len(row))
	}
	return nil
}

// ReadBooks parses a books table. It accepts either a "book title" or a
// "book name" column alongside "genre" and "rating"; other columns are ignored.
func ReadBooks(src io.Reader) ([]domain.Book, ReadStats, error) {
	var stats ReadStats
	r := newReader(src)
	h, width, err := readHeader(r)
	if err != nil {
		return nil, stats, err
	}

	nameIdx, err := h.require(colBookTitle, colBookName)
	if err != nil {
		return nil, stats, err
	}
	genreIdx, err := h.require(colGenre)
	if err != nil {
		return nil, stats, err
	}
	ratingIdx, err := h.require(colRating)
	if err != nil {
		return nil, stats, err
	}

	type bookKey struct {
		name, genre string
		rating      uint64
	}
	seen := make(map[bookKey]struct{})
	books := []domain.Book{}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read books: %w", err)
		}
		if err := checkWidth(r, row, width); err != nil {
			return nil, stats, err
		}
		stats.Rows++

		raw, ok := cell(row, ratingIdx)
		if !ok {
			stats.BadRating++
			continue
		}
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(rating) {
			stats.BadRating++
			continue
		}

		name, _ := cell(row, nameIdx)
		genre, ok := cell(row, genreIdx)
		if !ok {
			genre = domain.UnknownGenre
		}

		key := bookKey{name: name, genre: genre, rating: math.Float64bits(rating)}
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		books = append(books, domain.Book{Name: name, Genre: genre, Rating: rating})
	}

	return books, stats, nil
}

// ReadReviews parses a reviews table with "book name" and "review description" columns.
func ReadReviews(src io.Reader) ([]domain.Review, ReadStats, error) {
	var stats ReadStats
	r := newReader(src)
	h, width, err := readHeader(r)
	if err != nil {
		return nil, stats, err
	}

	nameIdx, err := h.require(colBookName)
	if err != nil {
		return nil, stats, err
	}
	textIdx, err := h.require(colReviewDescription)
	if err != nil {
		return nil, stats, err
	}

	seen := make(map[domain.Review]struct{})
	reviews := []domain.Review{}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read reviews: %w", err)
		}
		if err := checkWidth(r, row, width); err != nil {
			return nil, stats, err
		}
		stats.Rows++

		name, _ := cell(row, nameIdx)
		text, _ := cell(row, textIdx)
		review := domain.Review{BookName: name, Text: text}
		if _, dup := seen[review]; dup {
			stats.Duplicates++
			continue
		}
		seen[review] = struct{}{}
		reviews = append(reviews, review)
	}

	return reviews, stats, nil
}

// Read parses both tables from already-open sources into a loaded catalog.
func Read(books, reviews io.Reader) (*domain.Catalog, error) {
	b, _, err := ReadBooks(books)
	if err != nil {
		return nil, fmt.Errorf("books: %w", err)
	}
	r, _, err := ReadReviews(reviews)
	if err != nil {
		return nil, fmt.Errorf("reviews: %w", err)
	}
	return &domain.Catalog{Books: b, Reviews: r, Status: domain.LoadStatusLoaded}, nil
}
