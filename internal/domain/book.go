// Package domain contains the core entities of the book recommendation pipeline.
package domain

import "math"

// Placeholder values used when a row is missing a field.
const (
	UnknownGenre        = "Unknown"
	UnknownTitle        = "Unknown Title"
	UnknownGenreDisplay = "Unknown Genre"
)

// Book is a catalog row. Name is the lookup key for queries and review joins.
type Book struct {
	Name   string  `json:"name"`   // Empty when the source cell was missing
	Genre  string  `json:"genre"`  // Comma-separated genre labels, "Unknown" when missing at load
	Rating float64 `json:"rating"` // Static editorial/aggregate rating, typically 0-5
}

// HasName reports whether the book carries a title.
func (b Book) HasName() bool {
	return b.Name != ""
}

// WithDefaults returns a copy where every missing field is replaced by its placeholder.
func (b Book) WithDefaults() Book {
	if b.Name == "" {
		b.Name = UnknownTitle
	}
	if b.Genre == "" {
		b.Genre = UnknownGenreDisplay
	}
	if math.IsNaN(b.Rating) {
		b.Rating = 0
	}
	return b
}
