// internal/repository/postgres/pricing_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aquadesk-service/internal/domain/pricing"
	xerrors "aquadesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomPricingRepository struct {
	db *pgxpool.Pool
}

func NewCustomPricingRepository(db *pgxpool.Pool) *CustomPricingRepository {
	return &CustomPricingRepository{db: db}
}

// FindActive retrieves the single active custom price for a (customer, product) pair.
func (r *CustomPricingRepository) FindActive(ctx context.Context, customerID, productID int64) (*pricing.CustomPricing, error) {
	query := `
		SELECT id, customer_id, product_id, custom_price, is_active, created_at, updated_at
		FROM custom_pricings
		WHERE customer_id = $1 AND product_id = $2 AND is_active = TRUE
	`

	var cp pricing.CustomPricing
	err := r.db.QueryRow(ctx, query, customerID, productID).Scan(
		&cp.ID, &cp.CustomerID, &cp.ProductID, &cp.CustomPrice, &cp.IsActive,
		&cp.CreatedAt, &cp.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, xerrors.Persistence(err, "failed to find custom pricing")
	}

	return &cp, nil
}

// Upsert replaces the active custom price for the pair, creating the row if
// absent. The partial unique index on (customer_id, product_id) WHERE
// is_active guarantees at most one active row; a violation surfaces as a
// conflict.
func (r *CustomPricingRepository) Upsert(ctx context.Context, cp *pricing.CustomPricing) error {
	query := `
		UPDATE custom_pricings
		SET custom_price = $1, updated_at = $2
		WHERE customer_id = $3 AND product_id = $4 AND is_active = TRUE
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, cp.CustomPrice, time.Now(), cp.CustomerID, cp.ProductID).
		Scan(&cp.ID, &cp.CreatedAt, &cp.UpdatedAt)
	if err == nil {
		cp.IsActive = true
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return xerrors.Persistence(err, "failed to update custom pricing")
	}

	insert := `
		INSERT INTO custom_pricings (customer_id, product_id, custom_price, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRow(ctx, insert, cp.CustomerID, cp.ProductID, cp.CustomPrice).
		Scan(&cp.ID, &cp.CreatedAt, &cp.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return xerrors.Conflictf("active custom price already exists for customer %d product %d",
				cp.CustomerID, cp.ProductID)
		}
		return xerrors.Persistence(err, "failed to insert custom pricing")
	}

	cp.IsActive = true
	return nil
}

// Deactivate soft-deletes the active custom price for the pair.
func (r *CustomPricingRepository) Deactivate(ctx context.Context, customerID, productID int64) error {
	query := `
		UPDATE custom_pricings
		SET is_active = FALSE, updated_at = $1
		WHERE customer_id = $2 AND product_id = $3 AND is_active = TRUE
	`

	result, err := r.db.Exec(ctx, query, time.Now(), customerID, productID)
	if err != nil {
		return xerrors.Persistence(err, "failed to deactivate custom pricing")
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// List retrieves active custom prices with filters
func (r *CustomPricingRepository) List(ctx context.Context, filters *pricing.CustomPricingListFilters) ([]pricing.CustomPricing, int64, error) {
	conditions := []string{"is_active = TRUE"}
	args := []interface{}{}
	argPos := 1

	if filters.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", argPos))
		args = append(args, *filters.CustomerID)
		argPos++
	}

	if filters.ProductID != nil {
		conditions = append(conditions, fmt.Sprintf("product_id = $%d", argPos))
		args = append(args, *filters.ProductID)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM custom_pricings WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, xerrors.Persistence(err, "failed to count custom pricings")
	}

	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`
		SELECT id, customer_id, product_id, custom_price, is_active, created_at, updated_at
		FROM custom_pricings
		WHERE %s
		ORDER BY updated_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, xerrors.Persistence(err, "failed to list custom pricings")
	}
	defer rows.Close()

	pricings := []pricing.CustomPricing{}
	for rows.Next() {
		var cp pricing.CustomPricing
		err := rows.Scan(
			&cp.ID, &cp.CustomerID, &cp.ProductID, &cp.CustomPrice, &cp.IsActive,
			&cp.CreatedAt, &cp.UpdatedAt,
		)
		if err != nil {
			return nil, 0, xerrors.Persistence(err, "failed to scan custom pricing")
		}
		pricings = append(pricings, cp)
	}

	return pricings, total, nil
}
