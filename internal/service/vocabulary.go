package service

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/normkit/normalize-server/internal/domain"
	"github.com/normkit/normalize-server/internal/errors"
	"github.com/normkit/normalize-server/internal/logger"
	"github.com/normkit/normalize-server/internal/store"
	"github.com/normkit/normalize-server/internal/vocab"
)

// VocabularyService manages the matching vocabulary and the title matcher
// built from it. The matcher is cached and swapped atomically on reseed, the
// same way model snapshots are.
type VocabularyService struct {
	store  *store.Store
	logger *logger.Logger

	matcher atomic.Pointer[vocab.Matcher]
}

// NewVocabularyService creates a new vocabulary service.
func NewVocabularyService(store *store.Store, logger *logger.Logger) *VocabularyService {
	return &VocabularyService{
		store:  store,
		logger: logger,
	}
}

// Seed replaces the matching vocabulary from an import document and rebuilds
// the matcher. Learned color mappings survive a reseed.
func (s *VocabularyService) Seed(ctx context.Context, r io.Reader) (int, error) {
	v, err := vocab.ParseImport(r)
	if err != nil {
		return 0, err
	}

	entries := v.Entries()
	if err := s.store.ReplaceMatchingVocabulary(ctx, entries); err != nil {
		return 0, err
	}
	s.matcher.Store(vocab.NewMatcher(v))

	s.logger.Info("vocabulary seeded", "entries", len(entries))
	return len(entries), nil
}

// List returns every vocabulary entry, including learned colors, in position
// order.
func (s *VocabularyService) List(ctx context.Context) ([]domain.VocabularyEntry, error) {
	return s.store.ListVocabulary(ctx)
}

// NormalizeTitle runs the matcher over a raw title.
func (s *VocabularyService) NormalizeTitle(ctx context.Context, title string) (domain.NormalizedRecord, error) {
	if title == "" {
		return domain.NormalizedRecord{}, errors.Validation("title is required")
	}

	m, err := s.getMatcher(ctx)
	if err != nil {
		return domain.NormalizedRecord{}, err
	}
	return m.Normalize(title), nil
}

// getMatcher returns the cached matcher, building it from the store on first
// use. An empty vocabulary still yields a working matcher; every title just
// falls back to the defaults.
func (s *VocabularyService) getMatcher(ctx context.Context) (*vocab.Matcher, error) {
	if m := s.matcher.Load(); m != nil {
		return m, nil
	}

	entries, err := s.store.ListMatchingVocabulary(ctx)
	if err != nil {
		return nil, err
	}
	v, err := vocab.FromEntries(entries)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to rebuild vocabulary")
	}

	m := vocab.NewMatcher(v)
	s.matcher.Store(m)
	return m, nil
}
