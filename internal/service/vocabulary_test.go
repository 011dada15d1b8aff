package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/normkit/normalize-server/internal/domain"
	"github.com/normkit/normalize-server/internal/errors"
)

const seedDoc = `{
  "brands": {"Apple": ["apple", "iphone"]},
  "categories": {"Smartphones": ["iphone", "phone"]},
  "specs": {"storage": {"256GB": ["256gb"]}},
  "attributes": {"5G": ["5g"]}
}`

func TestSeedAndNormalizeTitle(t *testing.T) {
	env := newTestEnv(t)
	svc := env.vocabulary()
	ctx := context.Background()

	n, err := svc.Seed(ctx, strings.NewReader(seedDoc))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	rec, err := svc.NormalizeTitle(ctx, "Apple iPhone 14 Pro 256GB Space Gray")
	require.NoError(t, err)

	assert.Equal(t, "Apple", rec.Brand)
	assert.Equal(t, "Smartphones", rec.Category)
	assert.Equal(t, []string{"256GB"}, rec.Specs)
	assert.Equal(t, "SPACE", rec.Model)
}

func TestNormalizeTitleEmptyTitle(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.vocabulary().NormalizeTitle(context.Background(), "")
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestNormalizeTitleEmptyVocabulary(t *testing.T) {
	env := newTestEnv(t)

	rec, err := env.vocabulary().NormalizeTitle(context.Background(), "Mystery Gadget X200")
	require.NoError(t, err)
	assert.Equal(t, "Generic", rec.Brand)
	assert.Equal(t, "Uncategorized", rec.Category)
	assert.Equal(t, "MYSTERY", rec.Model)
}

// The matcher survives a process restart: a fresh service instance rebuilds it
// from the persisted vocabulary in the same order.
func TestMatcherRebuiltFromStore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.vocabulary().Seed(ctx, strings.NewReader(seedDoc))
	require.NoError(t, err)

	fresh := env.vocabulary()
	rec, err := fresh.NormalizeTitle(ctx, "Apple iPhone 14 Pro 256GB Space Gray")
	require.NoError(t, err)
	assert.Equal(t, "Apple", rec.Brand)
	assert.Equal(t, "Smartphones", rec.Category)
	assert.Equal(t, "SPACE", rec.Model)
}

func TestListIncludesLearnedColors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.vocabulary().Seed(ctx, strings.NewReader(seedDoc))
	require.NoError(t, err)

	p, _ := env.ingest().HandleWebhook(ctx, WebhookProduct{
		ID: 1, Title: "Shirt", Tags: []string{"color:midnite"},
	})
	env.review().SubmitFeedback(ctx, SubmitFeedbackRequest{ProductID: p.ID, Correction: "Midnight"})
	_, err = env.trainer().Consolidate(ctx)
	require.NoError(t, err)

	entries, err := env.vocabulary().List(ctx)
	require.NoError(t, err)

	var color *domain.VocabularyEntry
	for i := range entries {
		if entries[i].Category == domain.CategoryColor {
			color = &entries[i]
		}
	}
	require.NotNil(t, color)
	assert.Equal(t, "midnite", color.Alias)
	assert.Equal(t, "Midnight", color.CanonicalValue)
}

func TestSeedRejectsBadDocument(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.vocabulary().Seed(context.Background(), strings.NewReader(`{"bogus": {}}`))
	assert.True(t, errors.Is(err, errors.ErrValidation))
}
