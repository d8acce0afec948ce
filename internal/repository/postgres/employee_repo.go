// internal/repository/postgres/employee_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aquadesk-service/internal/domain/employee"
	xerrors "aquadesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EmployeeRepository struct {
	db *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `id, full_name, phone_number, employee_type, monthly_salary,
       is_active, notes, created_at, updated_at, deleted_at`

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.FullName, &e.PhoneNumber, &e.EmployeeType, &e.MonthlySalary,
		&e.IsActive, &e.Notes, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, xerrors.Persistence(err, "failed to scan employee")
	}
	return &e, nil
}

// Create creates a new employee
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	query := `
		INSERT INTO employees (full_name, phone_number, employee_type, monthly_salary, is_active, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		e.FullName, e.PhoneNumber, e.EmployeeType, e.MonthlySalary, e.IsActive, e.Notes,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)

	if err != nil {
		return xerrors.Persistence(err, "failed to create employee")
	}

	return nil
}

// FindByID retrieves an employee by ID
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id = $1 AND deleted_at IS NULL`, employeeColumns)
	return scanEmployee(r.db.QueryRow(ctx, query, id))
}

// FindActive retrieves an employee that exists and is active.
func (r *EmployeeRepository) FindActive(ctx context.Context, id int64) (*employee.Employee, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM employees WHERE id = $1 AND is_active = TRUE AND deleted_at IS NULL`,
		employeeColumns,
	)
	return scanEmployee(r.db.QueryRow(ctx, query, id))
}

// Update updates an employee
func (r *EmployeeRepository) Update(ctx context.Context, id int64, e *employee.Employee) error {
	query := `
		UPDATE employees
		SET full_name = $1, phone_number = $2, employee_type = $3,
		    monthly_salary = $4, notes = $5, updated_at = $6
		WHERE id = $7 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(
		ctx, query,
		e.FullName, e.PhoneNumber, e.EmployeeType, e.MonthlySalary, e.Notes, time.Now(), id,
	)
	if err != nil {
		return xerrors.Persistence(err, "failed to update employee")
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// UpdateStatus updates employee status (active/inactive)
func (r *EmployeeRepository) UpdateStatus(ctx context.Context, id int64, isActive bool) error {
	query := `UPDATE employees SET is_active = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, isActive, time.Now(), id)
	if err != nil {
		return xerrors.Persistence(err, "failed to update employee status")
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// SoftDelete soft deletes an employee
func (r *EmployeeRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE employees SET deleted_at = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, time.Now(), time.Now(), id)
	if err != nil {
		return xerrors.Persistence(err, "failed to delete employee")
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// List retrieves employees with filters
func (r *EmployeeRepository) List(ctx context.Context, filters *employee.EmployeeListFilters) ([]employee.Employee, int64, error) {
	conditions := []string{"deleted_at IS NULL"}
	args := []interface{}{}
	argPos := 1

	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filters.IsActive)
		argPos++
	}

	if filters.EmployeeType != "" {
		conditions = append(conditions, fmt.Sprintf("employee_type = $%d", argPos))
		args = append(args, filters.EmployeeType)
		argPos++
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(full_name ILIKE $%d OR phone_number ILIKE $%d)", argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, xerrors.Persistence(err, "failed to count employees")
	}

	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE %s
		ORDER BY full_name ASC
		LIMIT $%d OFFSET $%d
	`, employeeColumns, whereClause, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, xerrors.Persistence(err, "failed to list employees")
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		var e employee.Employee
		err := rows.Scan(
			&e.ID, &e.FullName, &e.PhoneNumber, &e.EmployeeType, &e.MonthlySalary,
			&e.IsActive, &e.Notes, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
		)
		if err != nil {
			return nil, 0, xerrors.Persistence(err, "failed to scan employee")
		}
		employees = append(employees, e)
	}

	return employees, total, nil
}

// ListActiveRiders retrieves all active rider employees, for report fan-out.
func (r *EmployeeRepository) ListActiveRiders(ctx context.Context) ([]employee.Employee, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM employees
		WHERE employee_type = $1 AND is_active = TRUE AND deleted_at IS NULL
		ORDER BY full_name ASC
	`, employeeColumns)

	rows, err := r.db.Query(ctx, query, employee.TypeRider)
	if err != nil {
		return nil, xerrors.Persistence(err, "failed to list active riders")
	}
	defer rows.Close()

	riders := []employee.Employee{}
	for rows.Next() {
		var e employee.Employee
		err := rows.Scan(
			&e.ID, &e.FullName, &e.PhoneNumber, &e.EmployeeType, &e.MonthlySalary,
			&e.IsActive, &e.Notes, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
		)
		if err != nil {
			return nil, xerrors.Persistence(err, "failed to scan employee")
		}
		riders = append(riders, e)
	}

	return riders, nil
}
