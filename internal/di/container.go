// Package di provides dependency injection configuration for the normalization server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/normkit/normalize-server/internal/config"
	"github.com/normkit/normalize-server/internal/di/providers"
	"github.com/normkit/normalize-server/internal/logger"
	"github.com/normkit/normalize-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Model layer
	do.Provide(injector, providers.ProvideModelHolder)
	do.Provide(injector, providers.ProvideModelWatcher)

	// Business services
	do.Provide(injector, providers.ProvideIngestService)
	do.Provide(injector, providers.ProvideReviewService)
	do.Provide(injector, providers.ProvideTrainerService)
	do.Provide(injector, providers.ProvideVocabularyService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.ModelHolderHandle](injector)
	_ = do.MustInvoke[*providers.ModelWatcherHandle](injector)

	_ = do.MustInvoke[*service.IngestService](injector)
	_ = do.MustInvoke[*service.ReviewService](injector)
	_ = do.MustInvoke[*service.TrainerService](injector)
	_ = do.MustInvoke[*service.VocabularyService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
