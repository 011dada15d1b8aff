// Package domain defines the core entities of the catalog normalization loop.
package domain

import "time"

// ReviewState describes where a product sits in the review lifecycle.
// NEW is transient: ingestion always persists straight into NEEDS_REVIEW.
type ReviewState string

const (
	ReviewStateNeedsReview ReviewState = "needs_review"
	ReviewStateReviewed    ReviewState = "reviewed"
)

// Product is one ingested catalog record with its normalization guess.
type Product struct {
	ID          int64  `json:"id"`
	ExternalID  string `json:"external_id"` // Shopify ID or bulk-upload handle
	ProductName string `json:"product_name"`
	// RawValue is the raw color text extracted from the source record.
	RawValue string `json:"raw_value,omitempty"`
	// MLPrediction is the lookup model's guess for RawValue at ingestion time.
	MLPrediction string `json:"ml_prediction,omitempty"`
	// NormalizedColor is authoritative only once NeedsReview is false.
	NormalizedColor string    `json:"normalized_color,omitempty"`
	NeedsReview     bool      `json:"needs_review"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// State returns the product's review state.
func (p *Product) State() ReviewState {
	if p.NeedsReview {
		return ReviewStateNeedsReview
	}
	return ReviewStateReviewed
}

// FeedbackRecord is one human correction, appended when a reviewer submits
// feedback and consumed (exactly once) by the consolidator. Retained for audit.
type FeedbackRecord struct {
	ID              int64     `json:"id"`
	ProductID       int64     `json:"product_id"`
	RawValue        string    `json:"raw_value"`
	MLPrediction    string    `json:"ml_prediction,omitempty"`
	HumanCorrection string    `json:"human_correction"`
	Processed       bool      `json:"processed"`
	CreatedAt       time.Time `json:"created_at"`
}
