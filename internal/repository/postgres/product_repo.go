// internal/repository/postgres/product_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aquadesk-service/internal/domain/product"
	xerrors "aquadesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, base_price, min_price, max_price, description,
       is_active, created_at, updated_at, deleted_at`

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.BasePrice, &p.MinPrice, &p.MaxPrice, &p.Description,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, xerrors.Persistence(err, "failed to scan product")
	}
	return &p, nil
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	query := `
		INSERT INTO products (name, base_price, min_price, max_price, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		p.Name, p.BasePrice, p.MinPrice, p.MaxPrice, p.Description, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return xerrors.Persistence(err, "failed to create product")
	}

	return nil
}

// FindByID retrieves a product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1 AND deleted_at IS NULL`, productColumns)
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

// FindActive retrieves a product that exists and is active.
func (r *ProductRepository) FindActive(ctx context.Context, id int64) (*product.Product, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM products WHERE id = $1 AND is_active = TRUE AND deleted_at IS NULL`,
		productColumns,
	)
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

// Update updates a product
func (r *ProductRepository) Update(ctx context.Context, id int64, p *product.Product) error {
	query := `
		UPDATE products
		SET name = $1, base_price = $2, min_price = $3, max_price = $4,
		    description = $5, updated_at = $6
		WHERE id = $7 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(
		ctx, query,
		p.Name, p.BasePrice, p.MinPrice, p.MaxPrice, p.Description, time.Now(), id,
	)
	if err != nil {
		return xerrors.Persistence(err, "failed to update product")
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// UpdateStatus updates product status (active/inactive)
func (r *ProductRepository) UpdateStatus(ctx context.Context, id int64, isActive bool) error {
	query := `UPDATE products SET is_active = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, isActive, time.Now(), id)
	if err != nil {
		return xerrors.Persistence(err, "failed to update product status")
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// SoftDelete soft deletes a product
func (r *ProductRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE products SET deleted_at = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, time.Now(), time.Now(), id)
	if err != nil {
		return xerrors.Persistence(err, "failed to delete product")
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// List retrieves products with filters
func (r *ProductRepository) List(ctx context.Context, filters *product.ProductListFilters) ([]product.Product, int64, error) {
	conditions := []string{"deleted_at IS NULL"}
	args := []interface{}{}
	argPos := 1

	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filters.IsActive)
		argPos++
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argPos))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, xerrors.Persistence(err, "failed to count products")
	}

	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, productColumns, whereClause, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, xerrors.Persistence(err, "failed to list products")
	}
	defer rows.Close()

	products := []product.Product{}
	for rows.Next() {
		var p product.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.BasePrice, &p.MinPrice, &p.MaxPrice, &p.Description,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
		)
		if err != nil {
			return nil, 0, xerrors.Persistence(err, "failed to scan product")
		}
		products = append(products, p)
	}

	return products, total, nil
}

// ListActive retrieves all active products (no pagination), for report fan-out.
func (r *ProductRepository) ListActive(ctx context.Context) ([]product.Product, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM products WHERE is_active = TRUE AND deleted_at IS NULL ORDER BY name ASC`,
		productColumns,
	)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, xerrors.Persistence(err, "failed to list active products")
	}
	defer rows.Close()

	products := []product.Product{}
	for rows.Next() {
		var p product.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.BasePrice, &p.MinPrice, &p.MaxPrice, &p.Description,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
		)
		if err != nil {
			return nil, xerrors.Persistence(err, "failed to scan product")
		}
		products = append(products, p)
	}

	return products, nil
}
