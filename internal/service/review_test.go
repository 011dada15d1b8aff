package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/normkit/normalize-server/internal/errors"
	"github.com/normkit/normalize-server/internal/model"
)

func TestSubmitFeedbackTransitionsProduct(t *testing.T) {
	env := newTestEnv(t)
	env.models.Store(model.New(nil, "v1", time.Now()))
	ctx := context.Background()

	p, err := env.ingest().HandleWebhook(ctx, WebhookProduct{
		ID: 1, Title: "Shirt", Tags: []string{"color:midnite"},
	})
	require.NoError(t, err)

	svc := env.review()
	f, err := svc.SubmitFeedback(ctx, SubmitFeedbackRequest{
		ProductID:  p.ID,
		Correction: "Midnight",
	})
	require.NoError(t, err)
	assert.Equal(t, "midnite", f.RawValue)
	assert.Equal(t, "Midnight", f.HumanCorrection)

	got, err := svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.NeedsReview)
	assert.Equal(t, "Midnight", got.NormalizedColor)

	queue, err := svc.ListProductsForReview(ctx)
	require.NoError(t, err)
	assert.Empty(t, queue)
}

func TestSubmitFeedbackWithExplicitRawValue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.ingest().HandleWebhook(ctx, WebhookProduct{
		ID: 5, Title: "Shirt", Tags: []string{"color:midnight blue"},
	})
	require.NoError(t, err)

	// The payload's raw value takes precedence over the product row.
	f, err := env.review().SubmitFeedback(ctx, SubmitFeedbackRequest{
		ProductID:  p.ID,
		RawValue:   "midnite",
		Correction: "Midnight",
	})
	require.NoError(t, err)
	assert.Equal(t, "midnite", f.RawValue)
}

func TestSubmitFeedbackUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.review().SubmitFeedback(context.Background(), SubmitFeedbackRequest{
		ProductID:  42,
		Correction: "Midnight",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestSubmitFeedbackValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.review().SubmitFeedback(ctx, SubmitFeedbackRequest{ProductID: 1})
	assert.True(t, errors.Is(err, errors.ErrValidation))

	_, err = env.review().SubmitFeedback(ctx, SubmitFeedbackRequest{Correction: "Midnight"})
	assert.True(t, errors.Is(err, errors.ErrValidation))
}
