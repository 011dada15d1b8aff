package service

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/normkit/normalize-server/internal/logger"
	"github.com/normkit/normalize-server/internal/model"
	"github.com/normkit/normalize-server/internal/store"
)

type testEnv struct {
	store        *store.Store
	models       *model.Holder
	logger       *logger.Logger
	artifactPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	log := logger.New(logger.Config{Writer: io.Discard})

	s, err := store.Open(filepath.Join(dir, "test.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return &testEnv{
		store:        s,
		models:       model.NewHolder(),
		logger:       log,
		artifactPath: filepath.Join(dir, "model.json"),
	}
}

func (e *testEnv) ingest() *IngestService {
	return NewIngestService(e.store, e.models, e.logger)
}

func (e *testEnv) review() *ReviewService {
	return NewReviewService(e.store, e.logger)
}

func (e *testEnv) trainer() *TrainerService {
	return NewTrainerService(e.store, e.models, e.logger, e.artifactPath)
}

func (e *testEnv) vocabulary() *VocabularyService {
	return NewVocabularyService(e.store, e.logger)
}
