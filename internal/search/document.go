// Package search suggests catalog titles close to a query using an in-memory Bleve index.
package search

import "github.com/listenupapp/bookrec/internal/domain"

// TitleDocument is the indexed form of a book title.
type TitleDocument struct {
	Name  string `json:"name"`
	Genre string `json:"genre"`
}

// NewTitleDocument builds a document from a catalog row.
func NewTitleDocument(b domain.Book) TitleDocument {
	return TitleDocument{Name: b.Name, Genre: b.Genre}
}

// ToMap converts the document to a map with the field names used by the mapping.
func (d TitleDocument) ToMap() map[string]any {
	return map[string]any{
		"name":  d.Name,
		"genre": d.Genre,
	}
}
