// internal/service/customer/customer.go
package customer

import (
	"context"

	"aquadesk-service/internal/domain/customer"
	xerrors "aquadesk-service/internal/pkg/errors"
	"aquadesk-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type CustomerService struct {
	customerRepo *postgres.CustomerRepository
	logger       *zap.Logger
}

func NewCustomerService(customerRepo *postgres.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CreateCustomer registers a new customer. Phone numbers are unique among
// non-deleted customers.
func (s *CustomerService) CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	exists, err := s.customerRepo.ExistsByPhone(ctx, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, xerrors.Conflictf("a customer with phone number %s already exists", req.PhoneNumber)
	}

	c := &customer.Customer{
		FullName:       req.FullName,
		PhoneNumber:    req.PhoneNumber,
		OpeningBottles: req.OpeningBottles,
		IsActive:       true,
		Tags:           req.Tags,
	}
	if req.AltPhoneNumber != "" {
		c.AltPhoneNumber.String = req.AltPhoneNumber
		c.AltPhoneNumber.Valid = true
	}
	if req.Email != "" {
		c.Email.String = req.Email
		c.Email.Valid = true
	}
	if req.Address != "" {
		c.Address.String = req.Address
		c.Address.Valid = true
	}
	if req.Notes != "" {
		c.Notes.String = req.Notes
		c.Notes.Valid = true
	}

	if err := s.customerRepo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create customer",
			zap.String("phone_number", req.PhoneNumber),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("customer created",
		zap.Int64("customer_id", c.ID),
		zap.String("full_name", c.FullName),
	)

	return c, nil
}

// GetCustomer retrieves a customer by ID, deleted ones included.
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("customer %d", id)
		}
		return nil, err
	}
	return c, nil
}

// UpdateCustomer applies the non-nil fields of the request.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, req *customer.UpdateCustomerRequest) (*customer.Customer, error) {
	c, err := s.customerRepo.FindActive(ctx, id)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("customer %d", id)
		}
		return nil, err
	}

	if req.PhoneNumber != nil && *req.PhoneNumber != c.PhoneNumber {
		exists, err := s.customerRepo.ExistsByPhone(ctx, *req.PhoneNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, xerrors.Conflictf("a customer with phone number %s already exists", *req.PhoneNumber)
		}
		c.PhoneNumber = *req.PhoneNumber
	}

	if req.FullName != nil {
		c.FullName = *req.FullName
	}
	if req.AltPhoneNumber != nil {
		c.AltPhoneNumber.String = *req.AltPhoneNumber
		c.AltPhoneNumber.Valid = *req.AltPhoneNumber != ""
	}
	if req.Email != nil {
		c.Email.String = *req.Email
		c.Email.Valid = *req.Email != ""
	}
	if req.Address != nil {
		c.Address.String = *req.Address
		c.Address.Valid = *req.Address != ""
	}
	if req.Notes != nil {
		c.Notes.String = *req.Notes
		c.Notes.Valid = *req.Notes != ""
	}
	if req.Tags != nil {
		c.Tags = req.Tags
	}

	if err := s.customerRepo.Update(ctx, id, c); err != nil {
		return nil, err
	}

	s.logger.Info("customer updated", zap.Int64("customer_id", id))
	return c, nil
}

// SetCustomerStatus activates or deactivates a customer.
func (s *CustomerService) SetCustomerStatus(ctx context.Context, id int64, isActive bool) error {
	if err := s.customerRepo.UpdateStatus(ctx, id, isActive); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.NotFoundf("customer %d", id)
		}
		return err
	}

	s.logger.Info("customer status updated", zap.Int64("customer_id", id), zap.Bool("is_active", isActive))
	return nil
}

// DeleteCustomer soft-deletes a customer. History referencing the customer
// stays intact.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.customerRepo.SoftDelete(ctx, id); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.NotFoundf("customer %d", id)
		}
		return err
	}

	s.logger.Info("customer deleted", zap.Int64("customer_id", id))
	return nil
}

// ListCustomers retrieves customers with filters.
func (s *CustomerService) ListCustomers(ctx context.Context, filters *customer.CustomerListFilters) (*customer.CustomerListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	if filters.PageSize > 100 {
		filters.PageSize = 100
	}

	customers, total, err := s.customerRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &customer.CustomerListResponse{
		Customers: customers,
		Total:     total,
		Page:      filters.Page,
		PageSize:  filters.PageSize,
	}, nil
}
