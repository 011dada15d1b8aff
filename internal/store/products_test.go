package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/normkit/normalize-server/internal/errors"
)

func TestUpsertAndGetProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p, err := s.UpsertProduct(ctx, "shopify-1", "Cool Shirt", "midnite", "midnite")
	if err != nil {
		t.Fatalf("UpsertProduct: %v", err)
	}

	if p.ID == 0 {
		t.Error("expected assigned ID")
	}
	if p.ExternalID != "shopify-1" {
		t.Errorf("ExternalID: got %q, want %q", p.ExternalID, "shopify-1")
	}
	if p.ProductName != "Cool Shirt" {
		t.Errorf("ProductName: got %q, want %q", p.ProductName, "Cool Shirt")
	}
	if p.RawValue != "midnite" {
		t.Errorf("RawValue: got %q, want %q", p.RawValue, "midnite")
	}
	if !p.NeedsReview {
		t.Error("new product should need review")
	}
	if p.NormalizedColor != "" {
		t.Errorf("NormalizedColor: got %q, want empty", p.NormalizedColor)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := s.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.ExternalID != p.ExternalID {
		t.Errorf("ExternalID: got %q, want %q", got.ExternalID, p.ExternalID)
	}
}

func TestUpsertProductReingestResetsReview(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p, err := s.UpsertProduct(ctx, "shopify-1", "Cool Shirt", "midnite", "midnite")
	if err != nil {
		t.Fatalf("UpsertProduct: %v", err)
	}

	// Review the product.
	if _, err := s.SubmitFeedback(ctx, p.ID, "", "", "Midnight"); err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}
	reviewed, err := s.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if reviewed.NeedsReview {
		t.Fatal("product should be reviewed")
	}

	// Re-ingesting the same external ID puts it back in the queue under the
	// same identity.
	again, err := s.UpsertProduct(ctx, "shopify-1", "Cool Shirt v2", "mdnight", "Midnight")
	if err != nil {
		t.Fatalf("UpsertProduct again: %v", err)
	}
	if again.ID != p.ID {
		t.Errorf("ID changed on re-ingest: got %d, want %d", again.ID, p.ID)
	}
	if !again.NeedsReview {
		t.Error("re-ingested product should need review")
	}
	if again.ProductName != "Cool Shirt v2" {
		t.Errorf("ProductName: got %q, want %q", again.ProductName, "Cool Shirt v2")
	}
	if again.RawValue != "mdnight" {
		t.Errorf("RawValue: got %q, want %q", again.RawValue, "mdnight")
	}
	if !again.CreatedAt.Equal(p.CreatedAt) {
		t.Error("created_at should be preserved on re-ingest")
	}
}

func TestGetProductNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetProduct(context.Background(), 999)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestListProductsForReview(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, _ := s.UpsertProduct(ctx, "a", "A", "red", "Red")
	second, _ := s.UpsertProduct(ctx, "b", "B", "blu", "Blue")
	third, _ := s.UpsertProduct(ctx, "c", "C", "grn", "Green")

	// Review the middle one; it must drop out of the queue.
	if _, err := s.SubmitFeedback(ctx, second.ID, "", "", "Blue"); err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}

	queue, err := s.ListProductsForReview(ctx)
	if err != nil {
		t.Fatalf("ListProductsForReview: %v", err)
	}
	if len(queue) != 2 {
		t.Fatalf("queue length: got %d, want 2", len(queue))
	}
	if queue[0].ID != first.ID || queue[1].ID != third.ID {
		t.Errorf("queue order: got [%d %d], want [%d %d]",
			queue[0].ID, queue[1].ID, first.ID, third.ID)
	}

	n, err := s.CountProductsForReview(ctx)
	if err != nil {
		t.Fatalf("CountProductsForReview: %v", err)
	}
	if n != 2 {
		t.Errorf("count: got %d, want 2", n)
	}
}

func TestBulkUpsertProducts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// An already reviewed product re-appears via the batch.
	existing, err := s.UpsertProduct(ctx, "case-1", "Case One", "midnite", "midnite")
	if err != nil {
		t.Fatalf("UpsertProduct: %v", err)
	}
	if _, err := s.SubmitFeedback(ctx, existing.ID, "", "", "Midnight"); err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}

	n, err := s.BulkUpsertProducts(ctx, []StagedProduct{
		{ExternalID: "case-1", ProductName: "Case One v2", RawValue: "mdnight", MLPrediction: "Midnight"},
		{ExternalID: "case-2", ProductName: "Case Two", RawValue: "blk", MLPrediction: "blk"},
		{ExternalID: "case-3", ProductName: "Case Three"},
	})
	if err != nil {
		t.Fatalf("BulkUpsertProducts: %v", err)
	}
	if n != 3 {
		t.Errorf("staged: got %d, want 3", n)
	}

	queue, err := s.ListProductsForReview(ctx)
	if err != nil {
		t.Fatalf("ListProductsForReview: %v", err)
	}
	if len(queue) != 3 {
		t.Fatalf("queue length: got %d, want 3", len(queue))
	}
	if queue[0].ID != existing.ID {
		t.Errorf("re-ingested ID changed: got %d, want %d", queue[0].ID, existing.ID)
	}
	if queue[0].ProductName != "Case One v2" {
		t.Errorf("ProductName: got %q, want %q", queue[0].ProductName, "Case One v2")
	}
}

// A batch is all-or-nothing: when staging fails partway, no item of the batch
// is visible in the review queue.
func TestBulkUpsertProductsAllOrNothing(t *testing.T) {
	s := newTestStore(t)

	items := make([]StagedProduct, 20000)
	for i := range items {
		items[i] = StagedProduct{
			ExternalID:  fmt.Sprintf("bulk-%d", i),
			ProductName: fmt.Sprintf("Product %d", i),
			RawValue:    "blk",
		}
	}

	// A deadline too short for the batch aborts it mid-flight.
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	_, err := s.BulkUpsertProducts(ctx, items)

	count, countErr := s.CountProductsForReview(context.Background())
	if countErr != nil {
		t.Fatalf("CountProductsForReview: %v", countErr)
	}
	if err != nil {
		if count != 0 {
			t.Fatalf("partial batch visible: %d products committed after failed staging", count)
		}
	} else if count != len(items) {
		t.Fatalf("count: got %d, want %d", count, len(items))
	}
}
