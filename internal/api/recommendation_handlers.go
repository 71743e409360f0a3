package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/bookrec/internal/api/dto"
)

func (s *Server) registerRecommendationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createRecommendations",
		Method:      http.MethodPost,
		Path:        "/api/v1/recommendations",
		Summary:     "Recommend books",
		Description: "Runs the full pipeline for one title query: loads the catalog, scores reviews, ranks candidates and overwrites the stored list",
		Tags:        []string{"Recommendations"},
	}, s.handleCreateRecommendations)

	huma.Register(s.api, huma.Operation{
		OperationID: "getLatestRecommendations",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations/latest",
		Summary:     "Latest recommendations",
		Description: "Returns the list held by the recommendation store from the most recent query",
		Tags:        []string{"Recommendations"},
	}, s.handleGetLatestRecommendations)

	huma.Register(s.api, huma.Operation{
		OperationID: "suggestTitles",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/suggestions",
		Summary:     "Suggest titles",
		Description: "Returns catalog titles that approximately match the query",
		Tags:        []string{"Books"},
	}, s.handleSuggestTitles)
}

// CreateRecommendationsInput wraps the query submission.
type CreateRecommendationsInput struct {
	Body dto.RecommendRequest
}

// CreateRecommendationsOutput wraps the pipeline result.
type CreateRecommendationsOutput struct {
	Body dto.RecommendResponse
}

func (s *Server) handleCreateRecommendations(ctx context.Context, input *CreateRecommendationsInput) (*CreateRecommendationsOutput, error) {
	result, err := s.service.Recommend(ctx, input.Body.ToService())
	if err != nil {
		return nil, huma.Error500InternalServerError("recommendation failed", err)
	}
	return &CreateRecommendationsOutput{Body: dto.NewRecommendResponse(result)}, nil
}

// LatestRecommendationsOutput wraps the stored list.
type LatestRecommendationsOutput struct {
	Body dto.ListResponse[dto.StoredRecommendation]
}

func (s *Server) handleGetLatestRecommendations(ctx context.Context, _ *struct{}) (*LatestRecommendationsOutput, error) {
	recs, err := s.service.Latest(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to read recommendations", err)
	}
	return &LatestRecommendationsOutput{
		Body: dto.NewListResponse(dto.NewStoredRecommendations(recs)),
	}, nil
}

// SuggestTitlesInput holds the suggestion query parameters.
type SuggestTitlesInput struct {
	Query string `query:"q" required:"true" minLength:"1" maxLength:"200" doc:"Approximate title"`
	Limit int    `query:"limit" minimum:"0" maximum:"50" doc:"Maximum suggestions; 0 uses the server default"`
}

// SuggestTitlesOutput wraps the suggested titles.
type SuggestTitlesOutput struct {
	Body dto.ListResponse[string]
}

func (s *Server) handleSuggestTitles(ctx context.Context, input *SuggestTitlesInput) (*SuggestTitlesOutput, error) {
	titles, err := s.service.Suggest(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("suggestion failed", err)
	}
	return &SuggestTitlesOutput{Body: dto.NewListResponse(titles)}, nil
}
