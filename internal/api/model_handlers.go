package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerModelRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "reloadModel",
		Method:      http.MethodPost,
		Path:        "/reload_model",
		Summary:     "Reload model",
		Description: "Reloads the lookup model from the published artifact and swaps it in atomically",
		Tags:        []string{"Model"},
	}, s.handleReloadModel)

	huma.Register(s.api, huma.Operation{
		OperationID: "consolidateFeedback",
		Method:      http.MethodPost,
		Path:        "/consolidate_feedback",
		Summary:     "Consolidate feedback",
		Description: "Folds pending reviewer feedback into the confirmed vocabulary and retrains the lookup model",
		Tags:        []string{"Model"},
	}, s.handleConsolidateFeedback)
}

func (s *Server) handleReloadModel(ctx context.Context, _ *struct{}) (*StatusOutput, error) {
	m, err := s.services.Trainer.Reload(ctx)
	if err != nil {
		return nil, err
	}

	return &StatusOutput{
		Body: StatusResponse{
			Status:  "success",
			Message: fmt.Sprintf("model %s loaded with %d entries", m.Version(), m.Size()),
		},
	}, nil
}

// ConsolidateResponse summarizes one consolidate-and-retrain run.
type ConsolidateResponse struct {
	Status            string `json:"status" doc:"Outcome status"`
	Message           string `json:"message" doc:"Human-readable outcome description"`
	ConsolidatedCount int    `json:"consolidated_count" doc:"Number of feedback records folded in"`
	ModelVersion      string `json:"model_version" doc:"Version of the retrained model"`
}

// ConsolidateOutput wraps the consolidation response for Huma.
type ConsolidateOutput struct {
	Body ConsolidateResponse
}

func (s *Server) handleConsolidateFeedback(ctx context.Context, _ *struct{}) (*ConsolidateOutput, error) {
	result, m, err := s.services.Trainer.ConsolidateAndRetrain(ctx)
	if err != nil {
		return nil, err
	}

	return &ConsolidateOutput{
		Body: ConsolidateResponse{
			Status:            "success",
			Message:           fmt.Sprintf("%d feedback records consolidated", result.Applied),
			ConsolidatedCount: result.Applied,
			ModelVersion:      m.Version(),
		},
	}, nil
}
