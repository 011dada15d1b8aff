// Package service orchestrates ingestion, review, and the retraining loop.
package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/normkit/normalize-server/internal/domain"
	"github.com/normkit/normalize-server/internal/logger"
	"github.com/normkit/normalize-server/internal/model"
	"github.com/normkit/normalize-server/internal/store"
	"github.com/normkit/normalize-server/internal/validation"
)

// colorTagPrefix marks the product tag carrying the raw color value.
const colorTagPrefix = "color:"

// IngestService stages incoming products for review.
type IngestService struct {
	store     *store.Store
	models    *model.Holder
	logger    *logger.Logger
	validator *validation.Validator
}

// NewIngestService creates a new ingest service.
func NewIngestService(store *store.Store, models *model.Holder, logger *logger.Logger) *IngestService {
	return &IngestService{
		store:     store,
		models:    models,
		logger:    logger,
		validator: validation.New(),
	}
}

// WebhookProduct is the product payload delivered by the Shopify webhook.
type WebhookProduct struct {
	ID    int64    `json:"id" validate:"required"`
	Title string   `json:"title" validate:"required,min=1"`
	Tags  []string `json:"tags"`
}

// HandleWebhook stages a webhook product. The raw color is extracted from the
// first "color:" tag, run through the active model for a prediction, and the
// product lands in the review queue. Re-delivery of the same product ID
// refreshes the existing row.
func (s *IngestService) HandleWebhook(ctx context.Context, req WebhookProduct) (*domain.Product, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	rawColor := extractColorTag(req.Tags)
	prediction := s.predict(rawColor)

	externalID := "shopify-" + strconv.FormatInt(req.ID, 10)
	p, err := s.store.UpsertProduct(ctx, externalID, req.Title, rawColor, prediction)
	if err != nil {
		return nil, err
	}

	s.logger.Info("webhook product staged",
		"product_id", p.ID,
		"external_id", externalID,
		"raw_value", rawColor,
		"prediction", prediction,
	)
	return p, nil
}

// BulkItem is one record of a bulk staging request. Handle is the source
// catalog identifier and becomes the product's external ID.
type BulkItem struct {
	Handle      string `json:"handle" validate:"required"`
	ProductName string `json:"product_name" validate:"required,min=1"`
	RawColor    string `json:"raw_color"`
}

// BulkStageRequest stages many products at once.
type BulkStageRequest struct {
	Products []BulkItem `json:"products" validate:"required,min=1,dive"`
}

// BulkStage stages every item of the request for review and returns the number
// staged. The batch commits as one transaction; a failure on any item stages
// nothing. Items without a raw color are staged with an empty prediction.
func (s *IngestService) BulkStage(ctx context.Context, req BulkStageRequest) (int, error) {
	if err := s.validator.Validate(req); err != nil {
		return 0, err
	}

	items := make([]store.StagedProduct, 0, len(req.Products))
	for _, item := range req.Products {
		prediction := ""
		if item.RawColor != "" {
			prediction = s.predict(item.RawColor)
		}
		items = append(items, store.StagedProduct{
			ExternalID:   item.Handle,
			ProductName:  item.ProductName,
			RawValue:     item.RawColor,
			MLPrediction: prediction,
		})
	}

	staged, err := s.store.BulkUpsertProducts(ctx, items)
	if err != nil {
		return 0, err
	}

	s.logger.Info("bulk data staged", "count", staged)
	return staged, nil
}

// predict runs the active model over a raw value. Before the first model is
// published, ingestion falls back to the identity prediction rather than
// failing; the reviewer corrects it either way.
func (s *IngestService) predict(raw string) string {
	if raw == "" {
		return ""
	}
	m, err := s.models.Current()
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return m.Predict(raw)
}

// extractColorTag returns the value of the first "color:" tag, or "".
func extractColorTag(tags []string) string {
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if strings.HasPrefix(strings.ToLower(trimmed), colorTagPrefix) {
			return strings.TrimSpace(trimmed[len(colorTagPrefix):])
		}
	}
	return ""
}
