package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunID(t *testing.T) {
	id, err := NewRunID()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, "run-"))
	assert.Len(t, id, len("run-")+size)
}

func TestNewModelVersion(t *testing.T) {
	id, err := NewModelVersion()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, "model-"))
	assert.Len(t, id, len("model-")+size)
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := Generate("run")
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate ID: %s", id)
		seen[id] = true
	}
}

func TestGenerateURLSafe(t *testing.T) {
	id, err := Generate("model")
	require.NoError(t, err)

	random := strings.TrimPrefix(id, "model-")
	for _, c := range random {
		assert.True(t,
			(c >= 'A' && c <= 'Z') ||
				(c >= 'a' && c <= 'z') ||
				(c >= '0' && c <= '9') ||
				c == '_' || c == '-',
			"character %c is not URL-safe", c)
	}
}
