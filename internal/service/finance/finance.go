// internal/service/finance/finance.go
package finance

import (
	"context"
	"math"
	"time"

	"aquadesk-service/internal/domain/customer"
	"aquadesk-service/internal/domain/employee"
	"aquadesk-service/internal/domain/finance"
	xerrors "aquadesk-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// CustomerFinder resolves active customers.
type CustomerFinder interface {
	FindActive(ctx context.Context, id int64) (*customer.Customer, error)
}

// EmployeeFinder resolves active employees.
type EmployeeFinder interface {
	FindActive(ctx context.Context, id int64) (*employee.Employee, error)
}

// AdvanceStore is the persistence contract for advance rows.
type AdvanceStore interface {
	Create(ctx context.Context, a *finance.Advance) error
	SumForParty(ctx context.Context, party finance.AdvanceParty, partyID int64, from, to *time.Time) (float64, error)
	ListForParty(ctx context.Context, party finance.AdvanceParty, partyID int64) ([]finance.Advance, error)
}

// ExpenditureStore is the persistence contract for expenditure rows.
type ExpenditureStore interface {
	Create(ctx context.Context, e *finance.Expenditure) error
	List(ctx context.Context, filters *finance.ExpenditureListFilters, from, to *time.Time) ([]finance.Expenditure, int64, error)
	SummarizeByCategory(ctx context.Context, from, to time.Time) ([]finance.ExpenditureSummary, error)
}

// SalesSummer totals a customer's non-cancelled order amounts.
type SalesSummer interface {
	SumSalesAmount(ctx context.Context, customerID int64) (float64, error)
}

// FinanceService records advances and expenditures and derives ledgers from
// them. Like the bottle ledger, outstanding amounts are recomputed from the
// transaction history on every read.
type FinanceService struct {
	advanceRepo     AdvanceStore
	expenditureRepo ExpenditureStore
	orderRepo       SalesSummer
	customerRepo    CustomerFinder
	employeeRepo    EmployeeFinder
	logger          *zap.Logger
}

func NewFinanceService(advanceRepo AdvanceStore, expenditureRepo ExpenditureStore, orderRepo SalesSummer, customerRepo CustomerFinder, employeeRepo EmployeeFinder, logger *zap.Logger) *FinanceService {
	return &FinanceService{
		advanceRepo:     advanceRepo,
		expenditureRepo: expenditureRepo,
		orderRepo:       orderRepo,
		customerRepo:    customerRepo,
		employeeRepo:    employeeRepo,
		logger:          logger,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func parseDateOrToday(value, field string) (time.Time, error) {
	if value == "" {
		return time.Now().Truncate(24 * time.Hour), nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, xerrors.Validationf("invalid %s %q, want YYYY-MM-DD", field, value)
	}
	return parsed, nil
}

// RecordCustomerAdvance records money received from a customer ahead of
// billing.
func (s *FinanceService) RecordCustomerAdvance(ctx context.Context, req *finance.RecordAdvanceRequest) (*finance.Advance, error) {
	if _, err := s.customerRepo.FindActive(ctx, req.PartyID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("customer %d", req.PartyID)
		}
		return nil, err
	}
	return s.recordAdvance(ctx, finance.PartyCustomer, req)
}

// RecordEmployeeAdvance records a salary advance paid to an employee.
func (s *FinanceService) RecordEmployeeAdvance(ctx context.Context, req *finance.RecordAdvanceRequest) (*finance.Advance, error) {
	if _, err := s.employeeRepo.FindActive(ctx, req.PartyID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("employee %d", req.PartyID)
		}
		return nil, err
	}
	return s.recordAdvance(ctx, finance.PartyEmployee, req)
}

func (s *FinanceService) recordAdvance(ctx context.Context, party finance.AdvanceParty, req *finance.RecordAdvanceRequest) (*finance.Advance, error) {
	if req.Amount <= 0 {
		return nil, xerrors.Validationf("advance amount must be positive, got %.2f", req.Amount)
	}

	receivedOn, err := parseDateOrToday(req.ReceivedOn, "received date")
	if err != nil {
		return nil, err
	}

	a := &finance.Advance{
		Party:      party,
		PartyID:    req.PartyID,
		Amount:     round2(req.Amount),
		ReceivedOn: receivedOn,
	}
	if req.Notes != "" {
		a.Notes.String = req.Notes
		a.Notes.Valid = true
	}

	if err := s.advanceRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("advance recorded",
		zap.String("party", string(party)),
		zap.Int64("party_id", a.PartyID),
		zap.Float64("amount", a.Amount),
	)

	return a, nil
}

// ListAdvances retrieves a party's advance rows, newest first.
func (s *FinanceService) ListAdvances(ctx context.Context, party finance.AdvanceParty, partyID int64) ([]finance.Advance, error) {
	switch party {
	case finance.PartyCustomer:
		if _, err := s.customerRepo.FindActive(ctx, partyID); err != nil {
			if xerrors.Is(err, xerrors.ErrNotFound) {
				return nil, xerrors.NotFoundf("customer %d", partyID)
			}
			return nil, err
		}
	case finance.PartyEmployee:
		if _, err := s.employeeRepo.FindActive(ctx, partyID); err != nil {
			if xerrors.Is(err, xerrors.ErrNotFound) {
				return nil, xerrors.NotFoundf("employee %d", partyID)
			}
			return nil, err
		}
	default:
		return nil, xerrors.Validationf("unknown advance party %q", party)
	}

	return s.advanceRepo.ListForParty(ctx, party, partyID)
}

// GetCustomerLedger derives the customer's receivable: lifetime non-cancelled
// sales less lifetime advances.
func (s *FinanceService) GetCustomerLedger(ctx context.Context, customerID int64) (*finance.CustomerLedger, error) {
	if _, err := s.customerRepo.FindActive(ctx, customerID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("customer %d", customerID)
		}
		return nil, err
	}

	sales, err := s.orderRepo.SumSalesAmount(ctx, customerID)
	if err != nil {
		return nil, err
	}

	advances, err := s.advanceRepo.SumForParty(ctx, finance.PartyCustomer, customerID, nil, nil)
	if err != nil {
		return nil, err
	}

	return &finance.CustomerLedger{
		CustomerID:    customerID,
		TotalSales:    round2(sales),
		TotalAdvances: round2(advances),
		Outstanding:   round2(sales - advances),
	}, nil
}

// GetEmployeeLedger derives the month's payable for an employee: monthly
// salary less the advances taken inside that calendar month.
func (s *FinanceService) GetEmployeeLedger(ctx context.Context, employeeID int64, month string) (*finance.EmployeeLedger, error) {
	e, err := s.employeeRepo.FindActive(ctx, employeeID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("employee %d", employeeID)
		}
		return nil, err
	}

	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, xerrors.Validationf("invalid month %q, want YYYY-MM", month)
	}
	end := start.AddDate(0, 1, -1)

	advances, err := s.advanceRepo.SumForParty(ctx, finance.PartyEmployee, employeeID, &start, &end)
	if err != nil {
		return nil, err
	}

	return &finance.EmployeeLedger{
		EmployeeID:    employeeID,
		Month:         month,
		MonthlySalary: e.MonthlySalary,
		TotalAdvances: round2(advances),
		NetPayable:    round2(e.MonthlySalary - advances),
	}, nil
}

// RecordExpenditure records an operating expense.
func (s *FinanceService) RecordExpenditure(ctx context.Context, req *finance.RecordExpenditureRequest) (*finance.Expenditure, error) {
	if req.Category == "" {
		return nil, xerrors.Validationf("expenditure category is required")
	}
	if req.Amount <= 0 {
		return nil, xerrors.Validationf("expenditure amount must be positive, got %.2f", req.Amount)
	}

	spentOn, err := parseDateOrToday(req.SpentOn, "spent date")
	if err != nil {
		return nil, err
	}

	e := &finance.Expenditure{
		Category: req.Category,
		Amount:   round2(req.Amount),
		SpentOn:  spentOn,
	}
	if req.Notes != "" {
		e.Notes.String = req.Notes
		e.Notes.Valid = true
	}

	if err := s.expenditureRepo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("expenditure recorded",
		zap.String("category", e.Category),
		zap.Float64("amount", e.Amount),
	)

	return e, nil
}

// ListExpenditures retrieves expenditures with filters.
func (s *FinanceService) ListExpenditures(ctx context.Context, filters *finance.ExpenditureListFilters) (*finance.ExpenditureListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	if filters.PageSize > 100 {
		filters.PageSize = 100
	}

	var from, to *time.Time
	if filters.From != "" {
		parsed, err := time.Parse("2006-01-02", filters.From)
		if err != nil {
			return nil, xerrors.Validationf("invalid from date %q, want YYYY-MM-DD", filters.From)
		}
		from = &parsed
	}
	if filters.To != "" {
		parsed, err := time.Parse("2006-01-02", filters.To)
		if err != nil {
			return nil, xerrors.Validationf("invalid to date %q, want YYYY-MM-DD", filters.To)
		}
		to = &parsed
	}

	expenditures, total, err := s.expenditureRepo.List(ctx, filters, from, to)
	if err != nil {
		return nil, err
	}

	return &finance.ExpenditureListResponse{
		Expenditures: expenditures,
		Total:        total,
		Page:         filters.Page,
		PageSize:     filters.PageSize,
	}, nil
}

// MonthlyExpenditureSummary totals expenditures per category for one calendar
// month.
func (s *FinanceService) MonthlyExpenditureSummary(ctx context.Context, month string) ([]finance.ExpenditureSummary, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, xerrors.Validationf("invalid month %q, want YYYY-MM", month)
	}
	end := start.AddDate(0, 1, -1)

	return s.expenditureRepo.SummarizeByCategory(ctx, start, end)
}
