package service

import (
	"context"
	"time"

	"github.com/normkit/normalize-server/internal/domain"
	"github.com/normkit/normalize-server/internal/id"
	"github.com/normkit/normalize-server/internal/logger"
	"github.com/normkit/normalize-server/internal/model"
	"github.com/normkit/normalize-server/internal/store"
)

// TrainerService folds reviewer feedback into the confirmed vocabulary and
// rebuilds the lookup model from it.
type TrainerService struct {
	store        *store.Store
	models       *model.Holder
	logger       *logger.Logger
	artifactPath string
}

// NewTrainerService creates a new trainer service. artifactPath is where
// retrained model snapshots are published.
func NewTrainerService(store *store.Store, models *model.Holder, logger *logger.Logger, artifactPath string) *TrainerService {
	return &TrainerService{
		store:        store,
		models:       models,
		logger:       logger,
		artifactPath: artifactPath,
	}
}

// ConsolidationResult summarizes one consolidation run.
type ConsolidationResult struct {
	RunID    string                   `json:"run_id"`
	Applied  int                      `json:"applied"`
	Feedback []*domain.FeedbackRecord `json:"feedback,omitempty"`
}

// Consolidate folds all pending feedback into the confirmed color vocabulary.
// A run with nothing pending succeeds with Applied == 0, so retries and
// scheduled runs are harmless.
func (s *TrainerService) Consolidate(ctx context.Context) (*ConsolidationResult, error) {
	runID, err := id.NewRunID()
	if err != nil {
		return nil, err
	}

	records, err := s.store.ConsolidateFeedback(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("feedback consolidated", "run_id", runID, "applied", len(records))
	return &ConsolidationResult{
		RunID:    runID,
		Applied:  len(records),
		Feedback: records,
	}, nil
}

// Retrain rebuilds the model from the full confirmed vocabulary, writes the
// artifact, and publishes the new snapshot. Always a full rebuild; the model
// never drifts from the vocabulary.
func (s *TrainerService) Retrain(ctx context.Context) (*model.Model, error) {
	mappings, err := s.store.ListColorMappings(ctx)
	if err != nil {
		return nil, err
	}

	version, err := id.NewModelVersion()
	if err != nil {
		return nil, err
	}

	m := model.New(mappings, version, time.Now().UTC())
	if err := model.Save(m, s.artifactPath); err != nil {
		return nil, err
	}
	s.models.Store(m)

	s.logger.Info("model retrained",
		"version", m.Version(),
		"entries", m.Size(),
		"artifact", s.artifactPath,
	)
	return m, nil
}

// ConsolidateAndRetrain runs a consolidation pass followed by a full retrain.
// This is the whole feedback loop: corrections become vocabulary, vocabulary
// becomes the next model.
func (s *TrainerService) ConsolidateAndRetrain(ctx context.Context) (*ConsolidationResult, *model.Model, error) {
	result, err := s.Consolidate(ctx)
	if err != nil {
		return nil, nil, err
	}
	m, err := s.Retrain(ctx)
	if err != nil {
		return result, nil, err
	}
	return result, m, nil
}

// Reload swaps in the model currently on disk without retraining. Used when an
// artifact was produced out of band.
func (s *TrainerService) Reload(ctx context.Context) (*model.Model, error) {
	m, err := model.Load(s.artifactPath)
	if err != nil {
		return nil, err
	}
	s.models.Store(m)

	s.logger.Info("model reloaded", "version", m.Version(), "entries", m.Size())
	return m, nil
}
