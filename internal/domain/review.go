package domain

// Review is a free-text review of a book.
// BookName references Book.Name but is not enforced; it may name a title absent from the catalog.
type Review struct {
	BookName string `json:"book_name"`
	Text     string `json:"review_description"` // Empty when the source cell was missing
}

// HasText reports whether the review has any text to analyze.
func (r Review) HasText() bool {
	return r.Text != ""
}

// ScoredReview is a Review with its polarity score attached.
type ScoredReview struct {
	Review
	SentimentScore float64 `json:"sentiment_score"` // In [-1, 1], exactly 0 for missing text
}
