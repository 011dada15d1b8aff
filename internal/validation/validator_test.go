package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/normkit/normalize-server/internal/errors"
)

type feedbackRequest struct {
	ProductID  int64  `json:"product_id" validate:"required,gt=0"`
	Correction string `json:"correction" validate:"required,min=1,max=120"`
}

func TestValidatePasses(t *testing.T) {
	v := New()

	err := v.Validate(feedbackRequest{ProductID: 5, Correction: "Midnight"})
	assert.NoError(t, err)
}

func TestValidateReturnsDomainError(t *testing.T) {
	v := New()

	err := v.Validate(feedbackRequest{})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))

	// Field names come from JSON tags.
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "product_id")
	assert.Contains(t, details, "correction")
	assert.Equal(t, "is required", details["correction"])
}

func TestValidateMaxLength(t *testing.T) {
	v := New()

	long := make([]byte, 200)
	for i := range long {
		long[i] = 'x'
	}

	err := v.Validate(feedbackRequest{ProductID: 1, Correction: string(long)})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))
	details := domainErr.Details.(map[string]string)
	assert.Equal(t, "must not exceed 120 characters", details["correction"])
}
