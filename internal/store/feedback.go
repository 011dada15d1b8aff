package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/normkit/normalize-server/internal/domain"
	"github.com/normkit/normalize-server/internal/errors"
)

const feedbackColumns = `id, product_id, raw_value, ml_prediction, human_correction, processed, created_at`

func scanFeedback(scanner interface{ Scan(dest ...any) error }) (*domain.FeedbackRecord, error) {
	var f domain.FeedbackRecord

	var (
		processed int
		createdAt string
	)

	err := scanner.Scan(
		&f.ID,
		&f.ProductID,
		&f.RawValue,
		&f.MLPrediction,
		&f.HumanCorrection,
		&processed,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	f.Processed = processed != 0
	f.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// SubmitFeedback records a human correction for a product and moves the
// product out of the review queue. The feedback row and the product update
// commit together or not at all. Empty rawValue or prediction fall back to the
// values stored on the product.
// Returns a NOT_FOUND error if the product does not exist.
func (s *Store) SubmitFeedback(ctx context.Context, productID int64, rawValue, prediction, correction string) (*domain.FeedbackRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	var productRaw, productPrediction string
	err = tx.QueryRowContext(ctx,
		`SELECT raw_value, ml_prediction FROM products WHERE id = ?`, productID).
		Scan(&productRaw, &productPrediction)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("product %d not found", productID)
	}
	if err != nil {
		return nil, errors.Storage("failed to load product for feedback", err)
	}
	if rawValue == "" {
		rawValue = productRaw
	}
	if prediction == "" {
		prediction = productPrediction
	}

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO training_feedback (
			product_id, raw_value, ml_prediction, human_correction, processed, created_at
		) VALUES (?, ?, ?, ?, 0, ?)`,
		productID, rawValue, prediction, correction, formatTime(now),
	)
	if err != nil {
		return nil, errors.Storage("failed to insert feedback", err)
	}
	feedbackID, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Storage("failed to read feedback id", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE products SET
			normalized_color = ?,
			needs_review     = 0,
			updated_at       = ?
		WHERE id = ?`,
		correction, formatTime(now), productID,
	)
	if err != nil {
		return nil, errors.Storage("failed to update product from feedback", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Storage("failed to commit feedback", err)
	}

	return &domain.FeedbackRecord{
		ID:              feedbackID,
		ProductID:       productID,
		RawValue:        rawValue,
		MLPrediction:    prediction,
		HumanCorrection: correction,
		Processed:       false,
		CreatedAt:       now,
	}, nil
}

// ListUnprocessedFeedback returns feedback not yet folded into the vocabulary,
// oldest first.
func (s *Store) ListUnprocessedFeedback(ctx context.Context) ([]*domain.FeedbackRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+feedbackColumns+` FROM training_feedback WHERE processed = 0 ORDER BY id ASC`)
	if err != nil {
		return nil, errors.Storage("failed to list unprocessed feedback", err)
	}
	defer rows.Close()

	var records []*domain.FeedbackRecord
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, errors.Storage("failed to scan feedback", err)
		}
		records = append(records, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("failed to iterate feedback", err)
	}
	return records, nil
}

// ConsolidateFeedback folds all unprocessed feedback into the confirmed color
// vocabulary and marks it processed, in a single transaction. Each correction
// upserts raw_value→human_correction; corrections are applied oldest first, so
// when the same raw value was corrected twice the newer correction wins.
// Calling it again with no pending feedback is a no-op.
func (s *Store) ConsolidateFeedback(ctx context.Context) ([]*domain.FeedbackRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT `+feedbackColumns+` FROM training_feedback WHERE processed = 0 ORDER BY id ASC`)
	if err != nil {
		return nil, errors.Storage("failed to list unprocessed feedback", err)
	}

	var records []*domain.FeedbackRecord
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			rows.Close()
			return nil, errors.Storage("failed to scan feedback", err)
		}
		records = append(records, f)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, errors.Storage("failed to iterate feedback", err)
	}
	rows.Close()

	for _, f := range records {
		alias := strings.ToLower(strings.TrimSpace(f.RawValue))
		if alias == "" {
			continue
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO vocabulary (category, spec_group, canonical_value, alias, position)
			VALUES (?, '', ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM vocabulary))
			ON CONFLICT(category, spec_group, alias) DO UPDATE SET
				canonical_value = excluded.canonical_value`,
			domain.CategoryColor, f.HumanCorrection, alias,
		)
		if err != nil {
			return nil, errors.Storage("failed to upsert color mapping", err)
		}
	}

	for _, f := range records {
		if _, err := tx.ExecContext(ctx,
			`UPDATE training_feedback SET processed = 1 WHERE id = ?`, f.ID); err != nil {
			return nil, errors.Storage("failed to mark feedback processed", err)
		}
		f.Processed = true
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Storage("failed to commit consolidation", err)
	}
	return records, nil
}
