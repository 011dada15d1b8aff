package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/normkit/normalize-server/internal/service"
)

// splitTags splits Shopify's comma-separated tag string into individual tags.
func splitTags(tags string) []string {
	if tags == "" {
		return nil
	}
	return strings.Split(tags, ", ")
}

func (s *Server) registerIngestRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "shopifyWebhook",
		Method:      http.MethodPost,
		Path:        "/shopify_webhook",
		Summary:     "Shopify product webhook",
		Description: "Stages a single product from a Shopify product webhook for review",
		Tags:        []string{"Ingestion"},
	}, s.handleShopifyWebhook)

	huma.Register(s.api, huma.Operation{
		OperationID: "bulkStageData",
		Method:      http.MethodPost,
		Path:        "/bulk_stage_data",
		Summary:     "Bulk stage products",
		Description: "Stages a batch of products for review in one request",
		Tags:        []string{"Ingestion"},
	}, s.handleBulkStageData)
}

// WebhookRequest is the Shopify product webhook payload. Only the fields the
// staging pipeline needs are decoded; the rest of the webhook body is ignored.
// Shopify delivers tags as one comma-separated string, not an array.
type WebhookRequest struct {
	ID    int64  `json:"id" doc:"Shopify product ID"`
	Title string `json:"title" doc:"Product title"`
	Tags  string `json:"tags,omitempty" doc:"Comma-separated product tags, raw color carried as color:<value>"`
}

// WebhookInput wraps the webhook payload for Huma.
type WebhookInput struct {
	Body WebhookRequest
}

// StatusResponse is the minimal acknowledgement body shared by write endpoints.
type StatusResponse struct {
	Status  string `json:"status" doc:"Outcome status"`
	Message string `json:"message" doc:"Human-readable outcome description"`
}

// StatusOutput wraps a status response for Huma.
type StatusOutput struct {
	Body StatusResponse
}

func (s *Server) handleShopifyWebhook(ctx context.Context, input *WebhookInput) (*StatusOutput, error) {
	p, err := s.services.Ingest.HandleWebhook(ctx, service.WebhookProduct{
		ID:    input.Body.ID,
		Title: input.Body.Title,
		Tags:  splitTags(input.Body.Tags),
	})
	if err != nil {
		return nil, err
	}

	return &StatusOutput{
		Body: StatusResponse{
			Status:  "success",
			Message: fmt.Sprintf("product %s staged for review", p.ExternalID),
		},
	}, nil
}

// BulkProduct is one product in a bulk staging request.
type BulkProduct struct {
	Handle      string `json:"handle" doc:"Stable product handle, used as the external ID"`
	ProductName string `json:"product_name,omitempty" doc:"Product display name"`
	RawColor    string `json:"raw_color,omitempty" doc:"Raw color value to normalize"`
}

// BulkStageRequest is the bulk staging payload.
type BulkStageRequest struct {
	Products []BulkProduct `json:"products" doc:"Products to stage for review"`
}

// BulkStageInput wraps the bulk staging payload for Huma.
type BulkStageInput struct {
	Body BulkStageRequest
}

// BulkStageResponse reports how many products were staged.
type BulkStageResponse struct {
	Status      string `json:"status" doc:"Outcome status"`
	StagedCount int    `json:"staged_count" doc:"Number of products staged"`
	Message     string `json:"message" doc:"Human-readable outcome description"`
}

// BulkStageOutput wraps the bulk staging response for Huma.
type BulkStageOutput struct {
	Body BulkStageResponse
}

func (s *Server) handleBulkStageData(ctx context.Context, input *BulkStageInput) (*BulkStageOutput, error) {
	req := service.BulkStageRequest{Products: make([]service.BulkItem, 0, len(input.Body.Products))}
	for _, p := range input.Body.Products {
		req.Products = append(req.Products, service.BulkItem{
			Handle:      p.Handle,
			ProductName: p.ProductName,
			RawColor:    p.RawColor,
		})
	}

	staged, err := s.services.Ingest.BulkStage(ctx, req)
	if err != nil {
		return nil, err
	}

	return &BulkStageOutput{
		Body: BulkStageResponse{
			Status:      "success",
			StagedCount: staged,
			Message:     fmt.Sprintf("%d products staged for review", staged),
		},
	}, nil
}
