// internal/repository/postgres/customer_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aquadesk-service/internal/domain/customer"
	xerrors "aquadesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `id, full_name, phone_number, alt_phone_number, email, address,
       opening_bottles, is_active, notes, tags, created_at, updated_at, deleted_at`

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID, &c.FullName, &c.PhoneNumber, &c.AltPhoneNumber, &c.Email, &c.Address,
		&c.OpeningBottles, &c.IsActive, &c.Notes, &c.Tags, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, xerrors.Persistence(err, "failed to scan customer")
	}
	return &c, nil
}

// Create creates a new customer
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (
			full_name, phone_number, alt_phone_number, email, address,
			opening_bottles, is_active, notes, tags
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		c.FullName, c.PhoneNumber, c.AltPhoneNumber, c.Email, c.Address,
		c.OpeningBottles, c.IsActive, c.Notes, c.Tags,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return xerrors.Persistence(err, "failed to create customer")
	}

	return nil
}

// FindByID retrieves a customer by ID
func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE id = $1 AND deleted_at IS NULL`, customerColumns)
	return scanCustomer(r.db.QueryRow(ctx, query, id))
}

// FindActive retrieves a customer that exists and is active.
func (r *CustomerRepository) FindActive(ctx context.Context, id int64) (*customer.Customer, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM customers WHERE id = $1 AND is_active = TRUE AND deleted_at IS NULL`,
		customerColumns,
	)
	return scanCustomer(r.db.QueryRow(ctx, query, id))
}

// ExistsByPhone checks if a customer exists with the phone number
func (r *CustomerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM customers WHERE phone_number = $1 AND deleted_at IS NULL)`
	var exists bool
	err := r.db.QueryRow(ctx, query, phone).Scan(&exists)
	if err != nil {
		return false, xerrors.Persistence(err, "failed to check customer phone")
	}
	return exists, nil
}

// Update updates a customer
func (r *CustomerRepository) Update(ctx context.Context, id int64, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET full_name = $1, phone_number = $2, alt_phone_number = $3, email = $4,
		    address = $5, notes = $6, tags = $7, updated_at = $8
		WHERE id = $9 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(
		ctx, query,
		c.FullName, c.PhoneNumber, c.AltPhoneNumber, c.Email,
		c.Address, c.Notes, c.Tags, time.Now(), id,
	)
	if err != nil {
		return xerrors.Persistence(err, "failed to update customer")
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// UpdateStatus updates customer status (active/inactive)
func (r *CustomerRepository) UpdateStatus(ctx context.Context, id int64, isActive bool) error {
	query := `UPDATE customers SET is_active = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, isActive, time.Now(), id)
	if err != nil {
		return xerrors.Persistence(err, "failed to update customer status")
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// SoftDelete soft deletes a customer
func (r *CustomerRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE customers SET deleted_at = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, time.Now(), time.Now(), id)
	if err != nil {
		return xerrors.Persistence(err, "failed to delete customer")
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// List retrieves customers with filters
func (r *CustomerRepository) List(ctx context.Context, filters *customer.CustomerListFilters) ([]customer.Customer, int64, error) {
	conditions := []string{"deleted_at IS NULL"}
	args := []interface{}{}
	argPos := 1

	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filters.IsActive)
		argPos++
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(full_name ILIKE $%d OR phone_number ILIKE $%d OR email ILIKE $%d)",
			argPos, argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	if len(filters.Tags) > 0 {
		conditions = append(conditions, fmt.Sprintf("tags && $%d", argPos))
		args = append(args, pq.Array(filters.Tags))
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM customers WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, xerrors.Persistence(err, "failed to count customers")
	}

	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`
		SELECT %s
		FROM customers
		WHERE %s
		ORDER BY full_name ASC
		LIMIT $%d OFFSET $%d
	`, customerColumns, whereClause, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, xerrors.Persistence(err, "failed to list customers")
	}
	defer rows.Close()

	customers := []customer.Customer{}
	for rows.Next() {
		var c customer.Customer
		err := rows.Scan(
			&c.ID, &c.FullName, &c.PhoneNumber, &c.AltPhoneNumber, &c.Email, &c.Address,
			&c.OpeningBottles, &c.IsActive, &c.Notes, &c.Tags, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
		)
		if err != nil {
			return nil, 0, xerrors.Persistence(err, "failed to scan customer")
		}
		customers = append(customers, c)
	}

	return customers, total, nil
}
