package providers

import (
	"github.com/samber/do/v2"

	"github.com/normkit/normalize-server/internal/config"
	"github.com/normkit/normalize-server/internal/logger"
	"github.com/normkit/normalize-server/internal/service"
)

// ProvideIngestService provides the product ingestion service.
func ProvideIngestService(i do.Injector) (*service.IngestService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	holderHandle := do.MustInvoke[*ModelHolderHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewIngestService(storeHandle.Store, holderHandle.Holder, log), nil
}

// ProvideReviewService provides the review queue service.
func ProvideReviewService(i do.Injector) (*service.ReviewService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReviewService(storeHandle.Store, log), nil
}

// ProvideTrainerService provides the consolidate-and-retrain service.
func ProvideTrainerService(i do.Injector) (*service.TrainerService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	holderHandle := do.MustInvoke[*ModelHolderHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTrainerService(storeHandle.Store, holderHandle.Holder, log, cfg.Model.ArtifactPath), nil
}

// ProvideVocabularyService provides the vocabulary and matcher service.
func ProvideVocabularyService(i do.Injector) (*service.VocabularyService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewVocabularyService(storeHandle.Store, log), nil
}
