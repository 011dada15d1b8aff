package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/normkit/normalize-server/internal/domain"
)

func (s *Server) registerVocabularyRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listVocabulary",
		Method:      http.MethodGet,
		Path:        "/vocabulary",
		Summary:     "List vocabulary",
		Description: "Returns all vocabulary entries, including learned color mappings",
		Tags:        []string{"Vocabulary"},
	}, s.handleListVocabulary)

	huma.Register(s.api, huma.Operation{
		OperationID: "normalizeTitle",
		Method:      http.MethodPost,
		Path:        "/normalize_title",
		Summary:     "Normalize a title",
		Description: "Runs one product title through the vocabulary matcher and returns the structured record",
		Tags:        []string{"Vocabulary"},
	}, s.handleNormalizeTitle)
}

// VocabularyOutput wraps the vocabulary listing for Huma.
type VocabularyOutput struct {
	Body []domain.VocabularyEntry
}

func (s *Server) handleListVocabulary(ctx context.Context, _ *struct{}) (*VocabularyOutput, error) {
	entries, err := s.services.Vocabulary.List(ctx)
	if err != nil {
		return nil, err
	}

	return &VocabularyOutput{Body: entries}, nil
}

// NormalizeTitleRequest carries one title to normalize.
type NormalizeTitleRequest struct {
	Title string `json:"title" doc:"Product title to normalize"`
}

// NormalizeTitleInput wraps the normalize payload for Huma.
type NormalizeTitleInput struct {
	Body NormalizeTitleRequest
}

// NormalizeTitleOutput wraps the structured record for Huma.
type NormalizeTitleOutput struct {
	Body domain.NormalizedRecord
}

func (s *Server) handleNormalizeTitle(ctx context.Context, input *NormalizeTitleInput) (*NormalizeTitleOutput, error) {
	record, err := s.services.Vocabulary.NormalizeTitle(ctx, input.Body.Title)
	if err != nil {
		return nil, err
	}

	return &NormalizeTitleOutput{Body: record}, nil
}
