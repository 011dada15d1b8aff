package store

import (
	"context"

	"github.com/normkit/normalize-server/internal/domain"
	"github.com/normkit/normalize-server/internal/errors"
)

const vocabularyColumns = `id, category, spec_group, canonical_value, alias, position`

func scanVocabularyEntry(scanner interface{ Scan(dest ...any) error }) (*domain.VocabularyEntry, error) {
	var e domain.VocabularyEntry
	err := scanner.Scan(
		&e.ID,
		&e.Category,
		&e.SpecGroup,
		&e.CanonicalValue,
		&e.Alias,
		&e.Position,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ReplaceMatchingVocabulary replaces the matcher vocabulary (brands,
// categories, specs, attributes) with the given entries, preserving learned
// color mappings. Runs in a single transaction.
func (s *Store) ReplaceMatchingVocabulary(ctx context.Context, entries []domain.VocabularyEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM vocabulary WHERE category != ?`, domain.CategoryColor); err != nil {
		return errors.Storage("failed to clear matching vocabulary", err)
	}

	for _, e := range entries {
		if !e.Category.Valid() || e.Category == domain.CategoryColor {
			return errors.Validationf("invalid vocabulary category %q", e.Category)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO vocabulary (category, spec_group, canonical_value, alias, position)
			VALUES (?, ?, ?, ?, ?)`,
			e.Category, e.SpecGroup, e.CanonicalValue, e.Alias, e.Position,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return errors.Conflict("duplicate vocabulary alias " + e.Alias).WithCause(err)
			}
			return errors.Storage("failed to insert vocabulary entry", err)
		}
	}

	return tx.Commit()
}

// ListVocabulary returns all vocabulary entries in position order.
func (s *Store) ListVocabulary(ctx context.Context) ([]domain.VocabularyEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+vocabularyColumns+` FROM vocabulary ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, errors.Storage("failed to list vocabulary", err)
	}
	defer rows.Close()

	var entries []domain.VocabularyEntry
	for rows.Next() {
		e, err := scanVocabularyEntry(rows)
		if err != nil {
			return nil, errors.Storage("failed to scan vocabulary entry", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("failed to iterate vocabulary", err)
	}
	return entries, nil
}

// ListMatchingVocabulary returns the matcher vocabulary (everything except
// learned color mappings) in position order.
func (s *Store) ListMatchingVocabulary(ctx context.Context) ([]domain.VocabularyEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+vocabularyColumns+` FROM vocabulary
		WHERE category != ?
		ORDER BY position ASC, id ASC`, domain.CategoryColor)
	if err != nil {
		return nil, errors.Storage("failed to list matching vocabulary", err)
	}
	defer rows.Close()

	var entries []domain.VocabularyEntry
	for rows.Next() {
		e, err := scanVocabularyEntry(rows)
		if err != nil {
			return nil, errors.Storage("failed to scan vocabulary entry", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("failed to iterate vocabulary", err)
	}
	return entries, nil
}

// ListColorMappings returns the confirmed raw→canonical color vocabulary.
func (s *Store) ListColorMappings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT alias, canonical_value FROM vocabulary
		WHERE category = ?
		ORDER BY position ASC, id ASC`, domain.CategoryColor)
	if err != nil {
		return nil, errors.Storage("failed to list color mappings", err)
	}
	defer rows.Close()

	mappings := make(map[string]string)
	for rows.Next() {
		var alias, canonical string
		if err := rows.Scan(&alias, &canonical); err != nil {
			return nil, errors.Storage("failed to scan color mapping", err)
		}
		mappings[alias] = canonical
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("failed to iterate color mappings", err)
	}
	return mappings, nil
}
