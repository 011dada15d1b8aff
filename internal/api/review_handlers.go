package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/normkit/normalize-server/internal/service"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getProductsForReview",
		Method:      http.MethodGet,
		Path:        "/get_products_for_review",
		Summary:     "List products for review",
		Description: "Returns the review queue in ingestion order",
		Tags:        []string{"Review"},
	}, s.handleGetProductsForReview)

	huma.Register(s.api, huma.Operation{
		OperationID:   "submitFeedback",
		Method:        http.MethodPost,
		Path:          "/submit_feedback",
		Summary:       "Submit feedback",
		Description:   "Records a reviewer correction and marks the product reviewed",
		Tags:          []string{"Review"},
		DefaultStatus: http.StatusCreated,
	}, s.handleSubmitFeedback)
}

// ReviewProduct is one review queue item as exposed over the API.
type ReviewProduct struct {
	ID           int64  `json:"id" doc:"Internal product ID"`
	ProductName  string `json:"product_name" doc:"Product display name"`
	RawValue     string `json:"raw_value" doc:"Raw color text from the source record"`
	MLPrediction string `json:"ml_prediction" doc:"Model prediction at ingestion time"`
}

// ReviewQueueOutput wraps the review queue for Huma.
type ReviewQueueOutput struct {
	Body []ReviewProduct
}

func (s *Server) handleGetProductsForReview(ctx context.Context, _ *struct{}) (*ReviewQueueOutput, error) {
	products, err := s.services.Review.ListProductsForReview(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ReviewProduct, 0, len(products))
	for _, p := range products {
		out = append(out, ReviewProduct{
			ID:           p.ID,
			ProductName:  p.ProductName,
			RawValue:     p.RawValue,
			MLPrediction: p.MLPrediction,
		})
	}

	return &ReviewQueueOutput{Body: out}, nil
}

// FeedbackRequest is a reviewer correction payload. RawValue and MLPrediction
// are optional; when omitted they are snapshotted from the product row.
type FeedbackRequest struct {
	ProductID    int64  `json:"product_id" doc:"Internal product ID"`
	RawValue     string `json:"raw_value,omitempty" doc:"Raw value being corrected"`
	MLPrediction string `json:"ml_prediction,omitempty" doc:"Model prediction being corrected"`
	Correction   string `json:"human_correction" doc:"Canonical value chosen by the reviewer"`
}

// FeedbackInput wraps the feedback payload for Huma.
type FeedbackInput struct {
	Body FeedbackRequest
}

func (s *Server) handleSubmitFeedback(ctx context.Context, input *FeedbackInput) (*StatusOutput, error) {
	f, err := s.services.Review.SubmitFeedback(ctx, service.SubmitFeedbackRequest{
		ProductID:    input.Body.ProductID,
		RawValue:     input.Body.RawValue,
		MLPrediction: input.Body.MLPrediction,
		Correction:   input.Body.Correction,
	})
	if err != nil {
		return nil, err
	}

	return &StatusOutput{
		Body: StatusResponse{
			Status:  "success",
			Message: fmt.Sprintf("feedback recorded for product %d", f.ProductID),
		},
	}, nil
}
