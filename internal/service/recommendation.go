package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/listenupapp/bookrec/internal/catalog"
	"github.com/listenupapp/bookrec/internal/config"
	"github.com/listenupapp/bookrec/internal/domain"
	domainerrors "github.com/listenupapp/bookrec/internal/errors"
	"github.com/listenupapp/bookrec/internal/id"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/metrics"
	"github.com/listenupapp/bookrec/internal/recommend"
	"github.com/listenupapp/bookrec/internal/search"
	"github.com/listenupapp/bookrec/internal/sentiment"
	"github.com/listenupapp/bookrec/internal/store"
	"github.com/listenupapp/bookrec/internal/validation"
)

// RecommendRequest is one query submission.
type RecommendRequest struct {
	Username  string `json:"username" validate:"max=100"`
	Choice    string `json:"choice" validate:"required,oneof=2"`
	InputData string `json:"input_data" validate:"max=200"`
	TopN      int    `json:"top_n,omitempty" validate:"gte=0,lte=100"`
}

// RecommendResult is the outcome of one pipeline run.
type RecommendResult struct {
	RunID string
	Query string
	// Ranked list with scores, as produced by the engine.
	Recommendations []domain.RecommendationEntry
	// The list as read back from the recommendation store.
	Persisted     []domain.PersistedRecommendation
	Suggestions   []string
	CatalogStatus domain.LoadStatus
}

// RecommendationService runs the load, score, recommend and persist pipeline.
type RecommendationService struct {
	cfg       config.RecommendConfig
	loader    *catalog.Loader
	scorer    *sentiment.Scorer
	engine    *recommend.Engine
	store     *store.RecommendationStore
	inputs    *store.UserInputLog
	suggester *search.Suggester
	logger    *logger.Logger
	validator *validation.Validator

	// pipeline serializes write-then-read-back of the shared store file.
	pipeline sync.Mutex
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(
	cfg config.RecommendConfig,
	loader *catalog.Loader,
	scorer *sentiment.Scorer,
	engine *recommend.Engine,
	recs *store.RecommendationStore,
	inputs *store.UserInputLog,
	suggester *search.Suggester,
	log *logger.Logger,
) *RecommendationService {
	return &RecommendationService{
		cfg:       cfg,
		loader:    loader,
		scorer:    scorer,
		engine:    engine,
		store:     recs,
		inputs:    inputs,
		suggester: suggester,
		logger:    log.WithComponent("service"),
		validator: validation.New(),
	}
}

// Recommend runs the pipeline for one query. Only invalid input or a
// cancelled context produce an error; load and persistence failures are
// logged and surface as an empty or unpersisted result.
func (s *RecommendationService) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	start := time.Now()
	runID := id.RequestID()
	log := s.logger.WithField("run_id", runID)
	ctx = logger.IntoContext(ctx, log)

	topN := req.TopN
	if topN == 0 {
		topN = s.cfg.TopN
	}

	s.pipeline.Lock()
	defer s.pipeline.Unlock()

	cat := s.loader.Load(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scored := s.scorer.Score(cat.Reviews)
	entries := s.engine.Recommend(ctx, req.InputData, cat.Books, scored, topN)

	persisted, err := s.store.Read()
	if err != nil {
		log.Error("failed to read back recommendations", "error", err)
		persisted = domain.ToPersisted(entries)
	}

	if err := s.inputs.Append(domain.UserInput{
		Username:        req.Username,
		Choice:          req.Choice,
		InputData:       req.InputData,
		Recommendations: entries,
	}); err != nil {
		log.Error("failed to append user input log", "error", err)
		metrics.RecordStoreWriteError()
	}

	result := &RecommendResult{
		RunID:           runID,
		Query:           req.InputData,
		Recommendations: entries,
		Persisted:       persisted,
		Suggestions:     []string{},
		CatalogStatus:   cat.Status,
	}

	outcome := metrics.OutcomeMatched
	switch {
	case cat.Degraded():
		outcome = metrics.OutcomeDegraded
	case len(entries) == 0:
		outcome = metrics.OutcomeNoMatch
		result.Suggestions = s.suggester.Suggest(ctx, cat.Books, req.InputData, s.cfg.SuggestionLimit)
	}

	duration := time.Since(start)
	metrics.RecordRecommendation(outcome, duration)
	log.Info("recommendation served",
		"query", req.InputData,
		"outcome", outcome,
		"results", len(entries),
		"duration", duration,
	)

	return result, nil
}

// Latest returns the list currently held by the recommendation store
// without running the pipeline.
func (s *RecommendationService) Latest(_ context.Context) ([]domain.PersistedRecommendation, error) {
	recs, err := s.store.Read()
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to read recommendations")
	}
	return recs, nil
}

// CheckCatalog reports whether the datasets are reachable.
func (s *RecommendationService) CheckCatalog() error {
	return s.loader.Check()
}

// Suggest returns catalog titles close to query.
func (s *RecommendationService) Suggest(ctx context.Context, query string, limit int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.Validation("query is required")
	}
	if limit <= 0 || limit > s.cfg.SuggestionLimit {
		limit = s.cfg.SuggestionLimit
	}

	cat := s.loader.Load(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cat.Degraded() {
		return nil, domainerrors.Wrap(cat.Err, domainerrors.CodeUnavailable, "catalog unavailable")
	}

	return s.suggester.Suggest(ctx, cat.Books, query, limit), nil
}
