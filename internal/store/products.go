package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/normkit/normalize-server/internal/domain"
	"github.com/normkit/normalize-server/internal/errors"
)

// productColumns is the ordered list of columns selected in product queries.
// Must match the scan order in scanProduct.
const productColumns = `id, external_id, product_name, raw_value, ml_prediction,
	normalized_color, needs_review, created_at, updated_at`

// scanProduct scans a sql.Row (or sql.Rows via its Scan method) into a domain.Product.
func scanProduct(scanner interface{ Scan(dest ...any) error }) (*domain.Product, error) {
	var p domain.Product

	var (
		normalizedColor sql.NullString
		needsReview     int
		createdAt       string
		updatedAt       string
	)

	err := scanner.Scan(
		&p.ID,
		&p.ExternalID,
		&p.ProductName,
		&p.RawValue,
		&p.MLPrediction,
		&normalizedColor,
		&needsReview,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if normalizedColor.Valid {
		p.NormalizedColor = normalizedColor.String
	}
	p.NeedsReview = needsReview != 0

	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// upsertProductSQL stages one product row. Re-ingesting an external ID
// refreshes the raw value and prediction and puts the product back into the
// review queue; its identity and created_at are preserved.
const upsertProductSQL = `
	INSERT INTO products (
		external_id, product_name, raw_value, ml_prediction,
		normalized_color, needs_review, created_at, updated_at
	) VALUES (?, ?, ?, ?, NULL, 1, ?, ?)
	ON CONFLICT(external_id) DO UPDATE SET
		product_name  = excluded.product_name,
		raw_value     = excluded.raw_value,
		ml_prediction = excluded.ml_prediction,
		needs_review  = 1,
		updated_at    = excluded.updated_at`

// UpsertProduct stages a single product for review.
func (s *Store) UpsertProduct(ctx context.Context, externalID, name, rawValue, prediction string) (*domain.Product, error) {
	now := formatTime(time.Now().UTC())

	_, err := s.db.ExecContext(ctx, upsertProductSQL,
		externalID, name, rawValue, prediction, now, now,
	)
	if err != nil {
		return nil, errors.Storage("failed to upsert product", err)
	}

	return s.GetProductByExternalID(ctx, externalID)
}

// StagedProduct is one item of a bulk staging batch.
type StagedProduct struct {
	ExternalID   string
	ProductName  string
	RawValue     string
	MLPrediction string
}

// BulkUpsertProducts stages a whole batch in a single transaction. A failure
// on any item rolls back the entire batch, so the review queue never shows a
// partially staged request.
func (s *Store) BulkUpsertProducts(ctx context.Context, items []StagedProduct) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	now := formatTime(time.Now().UTC())
	for _, item := range items {
		_, err := tx.ExecContext(ctx, upsertProductSQL,
			item.ExternalID, item.ProductName, item.RawValue, item.MLPrediction, now, now,
		)
		if err != nil {
			return 0, errors.Storage("failed to stage product", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Storage("failed to commit staged batch", err)
	}
	return len(items), nil
}

// GetProduct retrieves a product by ID.
// Returns a NOT_FOUND error if the product does not exist.
func (s *Store) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("product %d not found", id)
	}
	if err != nil {
		return nil, errors.Storage("failed to get product", err)
	}
	return p, nil
}

// GetProductByExternalID retrieves a product by its source identifier.
func (s *Store) GetProductByExternalID(ctx context.Context, externalID string) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE external_id = ?`, externalID)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("product %q not found", externalID)
	}
	if err != nil {
		return nil, errors.Storage("failed to get product", err)
	}
	return p, nil
}

// ListProductsForReview returns all products awaiting review, oldest first.
func (s *Store) ListProductsForReview(ctx context.Context) ([]*domain.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE needs_review = 1 ORDER BY id ASC`)
	if err != nil {
		return nil, errors.Storage("failed to list products for review", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, errors.Storage("failed to scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("failed to iterate products", err)
	}
	return products, nil
}

// CountProductsForReview returns the size of the review queue.
func (s *Store) CountProductsForReview(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE needs_review = 1`).Scan(&n)
	if err != nil {
		return 0, errors.Storage("failed to count products for review", err)
	}
	return n, nil
}
