// internal/service/employee/employee.go
package employee

import (
	"context"

	"aquadesk-service/internal/domain/employee"
	xerrors "aquadesk-service/internal/pkg/errors"
	"aquadesk-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type EmployeeService struct {
	employeeRepo *postgres.EmployeeRepository
	logger       *zap.Logger
}

func NewEmployeeService(employeeRepo *postgres.EmployeeRepository, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// CreateEmployee registers a new employee.
func (s *EmployeeService) CreateEmployee(ctx context.Context, req *employee.CreateEmployeeRequest) (*employee.Employee, error) {
	employeeType := employee.EmployeeType(req.EmployeeType)
	if !employee.ValidType(employeeType) {
		return nil, xerrors.Validationf("unknown employee type %q", req.EmployeeType)
	}
	if req.MonthlySalary < 0 {
		return nil, xerrors.Validationf("monthly salary must not be negative, got %.2f", req.MonthlySalary)
	}

	e := &employee.Employee{
		FullName:      req.FullName,
		PhoneNumber:   req.PhoneNumber,
		EmployeeType:  employeeType,
		MonthlySalary: req.MonthlySalary,
		IsActive:      true,
	}
	if req.Notes != "" {
		e.Notes.String = req.Notes
		e.Notes.Valid = true
	}

	if err := s.employeeRepo.Create(ctx, e); err != nil {
		s.logger.Error("failed to create employee", zap.String("full_name", req.FullName), zap.Error(err))
		return nil, err
	}

	s.logger.Info("employee created",
		zap.Int64("employee_id", e.ID),
		zap.String("employee_type", string(e.EmployeeType)),
	)

	return e, nil
}

// GetEmployee retrieves an employee by ID, deleted ones included.
func (s *EmployeeService) GetEmployee(ctx context.Context, id int64) (*employee.Employee, error) {
	e, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("employee %d", id)
		}
		return nil, err
	}
	return e, nil
}

// UpdateEmployee applies the non-nil fields of the request.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id int64, req *employee.UpdateEmployeeRequest) (*employee.Employee, error) {
	e, err := s.employeeRepo.FindActive(ctx, id)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("employee %d", id)
		}
		return nil, err
	}

	if req.EmployeeType != nil {
		employeeType := employee.EmployeeType(*req.EmployeeType)
		if !employee.ValidType(employeeType) {
			return nil, xerrors.Validationf("unknown employee type %q", *req.EmployeeType)
		}
		e.EmployeeType = employeeType
	}
	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		e.PhoneNumber = *req.PhoneNumber
	}
	if req.MonthlySalary != nil {
		if *req.MonthlySalary < 0 {
			return nil, xerrors.Validationf("monthly salary must not be negative, got %.2f", *req.MonthlySalary)
		}
		e.MonthlySalary = *req.MonthlySalary
	}
	if req.Notes != nil {
		e.Notes.String = *req.Notes
		e.Notes.Valid = *req.Notes != ""
	}

	if err := s.employeeRepo.Update(ctx, id, e); err != nil {
		return nil, err
	}

	s.logger.Info("employee updated", zap.Int64("employee_id", id))
	return e, nil
}

// SetEmployeeStatus activates or deactivates an employee.
func (s *EmployeeService) SetEmployeeStatus(ctx context.Context, id int64, isActive bool) error {
	if err := s.employeeRepo.UpdateStatus(ctx, id, isActive); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.NotFoundf("employee %d", id)
		}
		return err
	}

	s.logger.Info("employee status updated", zap.Int64("employee_id", id), zap.Bool("is_active", isActive))
	return nil
}

// DeleteEmployee soft-deletes an employee. Orders and activity rows
// referencing the employee stay intact.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id int64) error {
	if err := s.employeeRepo.SoftDelete(ctx, id); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.NotFoundf("employee %d", id)
		}
		return err
	}

	s.logger.Info("employee deleted", zap.Int64("employee_id", id))
	return nil
}

// ListEmployees retrieves employees with filters.
func (s *EmployeeService) ListEmployees(ctx context.Context, filters *employee.EmployeeListFilters) (*employee.EmployeeListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	if filters.PageSize > 100 {
		filters.PageSize = 100
	}

	employees, total, err := s.employeeRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &employee.EmployeeListResponse{
		Employees: employees,
		Total:     total,
		Page:      filters.Page,
		PageSize:  filters.PageSize,
	}, nil
}
