// internal/repository/postgres/bottle_balance_repo.go
package postgres

import (
	"context"
	"errors"

	"aquadesk-service/internal/domain/bottle"
	xerrors "aquadesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BottleBalanceRepository struct {
	db *pgxpool.Pool
}

func NewBottleBalanceRepository(db *pgxpool.Pool) *BottleBalanceRepository {
	return &BottleBalanceRepository{db: db}
}

// GetOpeningBottles returns the opening bottle count for a pair, or 0 when no
// balance row exists yet (absence of a row means a zero opening balance, not
// an error).
func (r *BottleBalanceRepository) GetOpeningBottles(ctx context.Context, customerID, productID int64) (int, error) {
	query := `
		SELECT opening_bottles FROM customer_product_balances
		WHERE customer_id = $1 AND product_id = $2
	`

	var opening int
	err := r.db.QueryRow(ctx, query, customerID, productID).Scan(&opening)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, xerrors.Persistence(err, "failed to get opening bottles")
	}

	return opening, nil
}

// SetOpeningBottles upserts the opening bottle count for a pair.
func (r *BottleBalanceRepository) SetOpeningBottles(ctx context.Context, customerID, productID int64, value int) error {
	query := `
		INSERT INTO customer_product_balances (customer_id, product_id, opening_bottles)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, product_id)
		DO UPDATE SET opening_bottles = EXCLUDED.opening_bottles, updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, customerID, productID, value); err != nil {
		return xerrors.Persistence(err, "failed to set opening bottles")
	}

	return nil
}

// ListForCustomer retrieves all balance rows for a customer.
func (r *BottleBalanceRepository) ListForCustomer(ctx context.Context, customerID int64) ([]bottle.CustomerProductBalance, error) {
	query := `
		SELECT id, customer_id, product_id, opening_bottles, created_at, updated_at
		FROM customer_product_balances
		WHERE customer_id = $1
		ORDER BY product_id ASC
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, xerrors.Persistence(err, "failed to list balances")
	}
	defer rows.Close()

	balances := []bottle.CustomerProductBalance{}
	for rows.Next() {
		var b bottle.CustomerProductBalance
		err := rows.Scan(&b.ID, &b.CustomerID, &b.ProductID, &b.OpeningBottles, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, xerrors.Persistence(err, "failed to scan balance")
		}
		balances = append(balances, b)
	}

	return balances, nil
}

// CustomersWithLegacyOpeningBottles returns ids and legacy opening counts for
// active customers that have a non-zero legacy seed but no balance row for
// the product. Migration support only.
func (r *BottleBalanceRepository) CustomersWithLegacyOpeningBottles(ctx context.Context, productID int64) (map[int64]int, error) {
	query := `
		SELECT c.id, c.opening_bottles
		FROM customers c
		WHERE c.opening_bottles > 0
		  AND c.deleted_at IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM customer_product_balances b
			WHERE b.customer_id = c.id AND b.product_id = $1
		  )
	`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, xerrors.Persistence(err, "failed to find unmigrated customers")
	}
	defer rows.Close()

	legacy := map[int64]int{}
	for rows.Next() {
		var id int64
		var opening int
		if err := rows.Scan(&id, &opening); err != nil {
			return nil, xerrors.Persistence(err, "failed to scan legacy opening bottles")
		}
		legacy[id] = opening
	}

	return legacy, nil
}
