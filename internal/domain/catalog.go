package domain

// LoadStatus describes how a catalog load ended.
type LoadStatus string

const (
	// LoadStatusLoaded means both sources were read and cleaned.
	LoadStatusLoaded LoadStatus = "loaded"
	// LoadStatusDegraded means ingestion failed and both tables are empty.
	LoadStatusDegraded LoadStatus = "degraded"
)

// Catalog is the cleaned output of the data loader.
//
// A degraded catalog always has empty Books and Reviews, so downstream stages
// produce an empty recommendation list instead of failing. Err records why.
type Catalog struct {
	Books   []Book
	Reviews []Review
	Status  LoadStatus
	Err     error
}

// Degraded reports whether ingestion failed.
func (c *Catalog) Degraded() bool {
	return c.Status == LoadStatusDegraded
}

// NewDegradedCatalog returns an empty catalog carrying the load failure.
func NewDegradedCatalog(err error) *Catalog {
	return &Catalog{
		Books:   []Book{},
		Reviews: []Review{},
		Status:  LoadStatusDegraded,
		Err:     err,
	}
}
