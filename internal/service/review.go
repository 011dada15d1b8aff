package service

import (
	"context"

	"github.com/normkit/normalize-server/internal/domain"
	"github.com/normkit/normalize-server/internal/logger"
	"github.com/normkit/normalize-server/internal/store"
	"github.com/normkit/normalize-server/internal/validation"
)

// ReviewService exposes the review queue and records reviewer corrections.
type ReviewService struct {
	store     *store.Store
	logger    *logger.Logger
	validator *validation.Validator
}

// NewReviewService creates a new review service.
func NewReviewService(store *store.Store, logger *logger.Logger) *ReviewService {
	return &ReviewService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// ListProductsForReview returns the pending review queue, oldest first.
func (s *ReviewService) ListProductsForReview(ctx context.Context) ([]*domain.Product, error) {
	return s.store.ListProductsForReview(ctx)
}

// GetProduct returns a single product.
func (s *ReviewService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// SubmitFeedbackRequest contains fields for one reviewer correction. RawValue
// and MLPrediction are optional; when omitted they are snapshotted from the
// product row.
type SubmitFeedbackRequest struct {
	ProductID    int64  `json:"product_id" validate:"required,gt=0"`
	RawValue     string `json:"raw_value" validate:"max=120"`
	MLPrediction string `json:"ml_prediction" validate:"max=120"`
	Correction   string `json:"human_correction" validate:"required,min=1,max=120"`
}

// SubmitFeedback records a correction and moves the product to reviewed.
// Submitting again for the same product overrides the earlier correction.
func (s *ReviewService) SubmitFeedback(ctx context.Context, req SubmitFeedbackRequest) (*domain.FeedbackRecord, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	f, err := s.store.SubmitFeedback(ctx, req.ProductID, req.RawValue, req.MLPrediction, req.Correction)
	if err != nil {
		return nil, err
	}

	s.logger.Info("feedback recorded",
		"feedback_id", f.ID,
		"product_id", f.ProductID,
		"raw_value", f.RawValue,
		"correction", f.HumanCorrection,
	)
	return f, nil
}
