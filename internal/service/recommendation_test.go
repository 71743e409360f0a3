package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookrec/internal/catalog"
	"github.com/listenupapp/bookrec/internal/config"
	"github.com/listenupapp/bookrec/internal/domain"
	domainerrors "github.com/listenupapp/bookrec/internal/errors"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/recommend"
	"github.com/listenupapp/bookrec/internal/search"
	"github.com/listenupapp/bookrec/internal/sentiment"
	"github.com/listenupapp/bookrec/internal/store"
)

const (
	testBooksCSV = "Book Title,Genre,Rating\n" +
		"Dune,Sci-Fi,4.5\n" +
		"Foundation,Sci-Fi,4.2\n" +
		"Emma,Romance,3.8\n" +
		"Hyperion,\"Sci-Fi, Space Opera\",4.4\n"
	testReviewsCSV = "book name,review description\n" +
		"Dune,great book\n" +
		"Foundation,boring\n"
)

// constAnalyzer scores every text the same so rankings are predictable.
type constAnalyzer float64

func (c constAnalyzer) Polarity(string) float64 { return float64(c) }

type fixture struct {
	svc  *RecommendationService
	data config.DataConfig
}

func setupService(t *testing.T) fixture {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "books.csv"), []byte(testBooksCSV), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "customer_reviews.csv"), []byte(testReviewsCSV), 0o600))

	data := config.DataConfig{
		BasePath:            dir,
		BooksFile:           "books.csv",
		ReviewsFile:         "customer_reviews.csv",
		RecommendationsFile: "recommendations.txt",
		UserInputsFile:      "user_inputs.txt",
	}
	log := logger.Discard()

	recs := store.NewRecommendationStore(data.RecommendationsPath(), log)
	svc := NewRecommendationService(
		config.RecommendConfig{TopN: 10, SuggestionLimit: 3},
		catalog.NewLoader(data, log),
		sentiment.NewScorer(constAnalyzer(0)),
		recommend.NewEngine(recommend.DefaultConfig(), recs, log),
		recs,
		store.NewUserInputLog(data.UserInputsPath()),
		search.NewSuggester(log),
		log,
	)

	return fixture{svc: svc, data: data}
}

func entryNames(entries []domain.RecommendationEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestRecommend_FullPipeline(t *testing.T) {
	f := setupService(t)

	res, err := f.svc.Recommend(context.Background(), RecommendRequest{
		Username:  "ana",
		Choice:    domain.ChoiceByBook,
		InputData: "dune",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, domain.LoadStatusLoaded, res.CatalogStatus)
	assert.Equal(t, []string{"Dune", "Hyperion", "Foundation"}, entryNames(res.Recommendations))
	assert.Equal(t, domain.ToPersisted(res.Recommendations), res.Persisted)
	assert.Empty(t, res.Suggestions)

	raw, err := os.ReadFile(f.data.UserInputsPath())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "Name: ana\nOption: 2\nBook Title: dune\nRecommendations:\n"))
	assert.Contains(t, string(raw), "Hyperion")
}

func TestRecommend_TopNOverride(t *testing.T) {
	f := setupService(t)

	res, err := f.svc.Recommend(context.Background(), RecommendRequest{Choice: "2", InputData: "dune", TopN: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "Hyperion"}, entryNames(res.Recommendations))
}

func TestRecommend_Validation(t *testing.T) {
	f := setupService(t)

	tests := []struct {
		name string
		req  RecommendRequest
	}{
		{"missing choice", RecommendRequest{InputData: "dune"}},
		{"unsupported choice", RecommendRequest{Choice: "1", InputData: "dune"}},
		{"top n too large", RecommendRequest{Choice: "2", InputData: "dune", TopN: 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Recommend(context.Background(), tt.req)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
		})
	}

	_, err := os.Stat(f.data.UserInputsPath())
	assert.True(t, os.IsNotExist(err), "rejected requests are not logged")
}

func TestRecommend_NoMatchOverwritesStoreAndSuggests(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	_, err := f.svc.Recommend(ctx, RecommendRequest{Choice: "2", InputData: "dune"})
	require.NoError(t, err)

	res, err := f.svc.Recommend(ctx, RecommendRequest{Choice: "2", InputData: "Foundaton"})
	require.NoError(t, err)

	assert.Empty(t, res.Recommendations)
	assert.Empty(t, res.Persisted)
	assert.Contains(t, res.Suggestions, "Foundation")

	latest, err := f.svc.Latest(ctx)
	require.NoError(t, err)
	assert.Empty(t, latest)
}

func TestRecommend_DegradedCatalog(t *testing.T) {
	f := setupService(t)
	require.NoError(t, os.Remove(f.data.BooksPath()))

	res, err := f.svc.Recommend(context.Background(), RecommendRequest{Choice: "2", InputData: "dune"})
	require.NoError(t, err)

	assert.Equal(t, domain.LoadStatusDegraded, res.CatalogStatus)
	assert.Empty(t, res.Recommendations)
	assert.Empty(t, res.Suggestions)
}

func TestRecommend_CancelledContext(t *testing.T) {
	f := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Recommend(ctx, RecommendRequest{Choice: "2", InputData: "dune"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLatest(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	latest, err := f.svc.Latest(ctx)
	require.NoError(t, err)
	assert.Empty(t, latest, "nothing stored yet")

	_, err = f.svc.Recommend(ctx, RecommendRequest{Choice: "2", InputData: "emma"})
	require.NoError(t, err)

	latest, err = f.svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.PersistedRecommendation{{Name: "Emma", Genre: "Romance", Rating: 3.8}}, latest)
}

func TestSuggest(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	got, err := f.svc.Suggest(ctx, "Hyperon", 0)
	require.NoError(t, err)
	assert.Contains(t, got, "Hyperion")

	_, err = f.svc.Suggest(ctx, "  ", 5)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	require.NoError(t, os.Remove(f.data.ReviewsPath()))
	_, err = f.svc.Suggest(ctx, "Hyperon", 5)
	assert.ErrorIs(t, err, domainerrors.ErrUnavailable)
}
