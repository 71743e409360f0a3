// Package di provides dependency injection configuration for the recommendation server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/bookrec/internal/catalog"
	"github.com/listenupapp/bookrec/internal/config"
	"github.com/listenupapp/bookrec/internal/di/providers"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideRecommendationStore)
	do.Provide(injector, providers.ProvideUserInputLog)

	// Pipeline stages
	do.Provide(injector, providers.ProvideCatalogLoader)
	do.Provide(injector, providers.ProvideSentimentScorer)
	do.Provide(injector, providers.ProvideRecommendationEngine)
	do.Provide(injector, providers.ProvideSuggester)

	// Business services
	do.Provide(injector, providers.ProvideRecommendationService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	log := do.MustInvoke[*logger.Logger](injector)

	// A missing dataset is not fatal; queries return empty lists until it appears.
	if err := do.MustInvoke[*catalog.Loader](injector).Check(); err != nil {
		log.Warn("Datasets not readable, recommendations will be empty", "error", err)
	}

	_ = do.MustInvoke[*service.RecommendationService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
