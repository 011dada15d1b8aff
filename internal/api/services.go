package api

import (
	"github.com/normkit/normalize-server/internal/model"
	"github.com/normkit/normalize-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Ingest     *service.IngestService
	Review     *service.ReviewService
	Trainer    *service.TrainerService
	Vocabulary *service.VocabularyService

	// Models is the active model holder, read directly for health reporting.
	Models *model.Holder
}
