package dto

import (
	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/service"
)

// RecommendRequest is the body of a query submission.
type RecommendRequest struct {
	Username  string `json:"username,omitempty" maxLength:"100" doc:"Display name recorded in the user input log"`
	Choice    string `json:"choice" example:"2" doc:"Recommendation mode; only \"2\" (by book title) is supported"`
	InputData string `json:"input_data" maxLength:"200" example:"dune" doc:"Title substring to search for (case-insensitive)"`
	TopN      int    `json:"top_n,omitempty" minimum:"0" maximum:"100" doc:"Maximum number of results; 0 uses the server default"`
}

// ToService converts the request into the service form.
func (r RecommendRequest) ToService() service.RecommendRequest {
	return service.RecommendRequest{
		Username:  r.Username,
		Choice:    r.Choice,
		InputData: r.InputData,
		TopN:      r.TopN,
	}
}

// Recommendation is one ranked entry.
type Recommendation struct {
	BookName       string   `json:"book_name" doc:"Book title"`
	Genre          string   `json:"genre" doc:"Comma-separated genre labels"`
	Rating         float64  `json:"rating" doc:"Static book rating"`
	SentimentScore *float64 `json:"sentiment_score,omitempty" doc:"Mean review polarity; absent for title matches"`
	FinalScore     *float64 `json:"final_score,omitempty" doc:"Blended ranking score; absent for title matches"`
}

// RecommendResponse is the outcome of one pipeline run.
type RecommendResponse struct {
	RunID           string           `json:"run_id" doc:"Identifier of this pipeline run"`
	Query           string           `json:"query" doc:"The submitted title query"`
	CatalogStatus   string           `json:"catalog_status" enum:"loaded,degraded" doc:"Whether the datasets loaded"`
	Recommendations []Recommendation `json:"recommendations" doc:"Ranked recommendations, title matches first"`
	Suggestions     []string         `json:"suggestions" doc:"Closest catalog titles when nothing matched"`
}

// NewRecommendResponse builds the response body from a service result.
func NewRecommendResponse(res *service.RecommendResult) RecommendResponse {
	recs := make([]Recommendation, len(res.Recommendations))
	for i, e := range res.Recommendations {
		recs[i] = Recommendation{
			BookName:       e.Name,
			Genre:          e.Genre,
			Rating:         finite(e.Rating),
			SentimentScore: finitePtr(e.SentimentScore),
			FinalScore:     finitePtr(e.FinalScore),
		}
	}
	suggestions := res.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return RecommendResponse{
		RunID:           res.RunID,
		Query:           res.Query,
		CatalogStatus:   string(res.CatalogStatus),
		Recommendations: recs,
		Suggestions:     suggestions,
	}
}

// StoredRecommendation is a row of the recommendation store.
type StoredRecommendation struct {
	BookName string  `json:"book_name" doc:"Book title"`
	Genre    string  `json:"genre" doc:"Comma-separated genre labels"`
	Rating   float64 `json:"rating" doc:"Static book rating"`
}

// NewStoredRecommendations converts persisted rows for output.
func NewStoredRecommendations(recs []domain.PersistedRecommendation) []StoredRecommendation {
	out := make([]StoredRecommendation, len(recs))
	for i, r := range recs {
		out[i] = StoredRecommendation{BookName: r.Name, Genre: r.Genre, Rating: finite(r.Rating)}
	}
	return out
}

func finitePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := finite(*v)
	return &f
}
