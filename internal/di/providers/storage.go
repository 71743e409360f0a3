package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/bookrec/internal/config"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/store"
)

// ProvideRecommendationStore provides the flat-file recommendation store.
func ProvideRecommendationStore(i do.Injector) (*store.RecommendationStore, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	recs := store.NewRecommendationStore(cfg.Data.RecommendationsPath(), log)
	log.Info("Recommendation store initialized", "path", recs.Path())

	return recs, nil
}

// ProvideUserInputLog provides the append-only user input log.
func ProvideUserInputLog(i do.Injector) (*store.UserInputLog, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return store.NewUserInputLog(cfg.Data.UserInputsPath()), nil
}
