package domain

// RecommendationEntry is one row of a ranked recommendation list.
//
// Title matches are always listed first and carry no scores. Genre-matched
// candidates carry both their mean review sentiment and their blended final score.
type RecommendationEntry struct {
	Book
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
	FinalScore     *float64 `json:"final_score,omitempty"`
}

// IsScored reports whether the entry came from the scored candidate pool.
func (e RecommendationEntry) IsScored() bool {
	return e.FinalScore != nil
}

// PersistedRecommendation is the on-disk form of a recommendation.
// Scores are intentionally not persisted.
type PersistedRecommendation struct {
	Name   string  `json:"book_name"`
	Genre  string  `json:"genre"`
	Rating float64 `json:"rating"`
}

// ToPersisted strips the scores from a ranked list.
func ToPersisted(entries []RecommendationEntry) []PersistedRecommendation {
	out := make([]PersistedRecommendation, len(entries))
	for i, e := range entries {
		out[i] = PersistedRecommendation{Name: e.Name, Genre: e.Genre, Rating: e.Rating}
	}
	return out
}

// Choice values accepted at the query submission boundary.
const (
	// ChoiceByBook selects "recommend by book title", the only supported mode.
	ChoiceByBook = "2"
)

// UserInput is one record of the append-only user input log.
type UserInput struct {
	Username        string
	Choice          string
	InputData       string
	Recommendations []RecommendationEntry
}
