package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/bookrec/internal/catalog"
	"github.com/listenupapp/bookrec/internal/config"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/recommend"
	"github.com/listenupapp/bookrec/internal/search"
	"github.com/listenupapp/bookrec/internal/sentiment"
	"github.com/listenupapp/bookrec/internal/service"
	"github.com/listenupapp/bookrec/internal/store"
)

// ProvideCatalogLoader provides the dataset loader.
func ProvideCatalogLoader(i do.Injector) (*catalog.Loader, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return catalog.NewLoader(cfg.Data, log), nil
}

// ProvideSentimentScorer provides the review scorer backed by VADER.
func ProvideSentimentScorer(_ do.Injector) (*sentiment.Scorer, error) {
	return sentiment.NewScorer(sentiment.NewVaderAnalyzer()), nil
}

// ProvideRecommendationEngine provides the ranking engine, persisting to the recommendation store.
func ProvideRecommendationEngine(i do.Injector) (*recommend.Engine, error) {
	recs := do.MustInvoke[*store.RecommendationStore](i)
	log := do.MustInvoke[*logger.Logger](i)

	return recommend.NewEngine(recommend.DefaultConfig(), recs, log), nil
}

// ProvideRecommendationService provides the pipeline service.
func ProvideRecommendationService(i do.Injector) (*service.RecommendationService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecommendationService(
		cfg.Recommend,
		do.MustInvoke[*catalog.Loader](i),
		do.MustInvoke[*sentiment.Scorer](i),
		do.MustInvoke[*recommend.Engine](i),
		do.MustInvoke[*store.RecommendationStore](i),
		do.MustInvoke[*store.UserInputLog](i),
		do.MustInvoke[*search.Suggester](i),
		log,
	), nil
}
