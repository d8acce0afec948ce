// internal/service/rider/accountability.go
package rider

import (
	"context"
	"time"

	"aquadesk-service/internal/domain/employee"
	"aquadesk-service/internal/domain/product"
	"aquadesk-service/internal/domain/rider"
	xerrors "aquadesk-service/internal/pkg/errors"
	"aquadesk-service/internal/repository/postgres"

	"go.uber.org/zap"
)

// EmployeeStore resolves employees and enumerates active riders.
type EmployeeStore interface {
	FindActive(ctx context.Context, id int64) (*employee.Employee, error)
	ListActiveRiders(ctx context.Context) ([]employee.Employee, error)
}

// ProductStore resolves products and enumerates active ones.
type ProductStore interface {
	FindActive(ctx context.Context, id int64) (*product.Product, error)
	ListActive(ctx context.Context) ([]product.Product, error)
}

// ActivityStore is the persistence contract for rider activity rows.
type ActivityStore interface {
	Create(ctx context.Context, a *rider.Activity) error
	SumActivity(ctx context.Context, filter postgres.ActivitySumFilter) (postgres.ActivitySums, error)
	List(ctx context.Context, filters *rider.ActivityListFilters, from, to *time.Time) ([]rider.Activity, int64, error)
}

// SoldSummer totals quantities sold through a rider's orders.
type SoldSummer interface {
	SumSoldByRider(ctx context.Context, riderID, productID int64, from, to *time.Time) (int, error)
}

// AccountabilityService reconciles the bottles a rider took out against what
// came back: accountability = filledSent - filledReturned - sold. The sale is
// attributed to the order's assigned rider; the reconciliation assumes that is
// also who carried the filled bottles.
type AccountabilityService struct {
	activityRepo ActivityStore
	orderRepo    SoldSummer
	employeeRepo EmployeeStore
	productRepo  ProductStore
	logger       *zap.Logger
}

func NewAccountabilityService(activityRepo ActivityStore, orderRepo SoldSummer, employeeRepo EmployeeStore, productRepo ProductStore, logger *zap.Logger) *AccountabilityService {
	return &AccountabilityService{
		activityRepo: activityRepo,
		orderRepo:    orderRepo,
		employeeRepo: employeeRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

func (s *AccountabilityService) findRider(ctx context.Context, riderID int64) (*employee.Employee, error) {
	e, err := s.employeeRepo.FindActive(ctx, riderID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("rider %d", riderID)
		}
		return nil, err
	}
	if e.EmployeeType != employee.TypeRider {
		return nil, xerrors.Validationf("employee %d is a %s, not a rider", riderID, e.EmployeeType)
	}
	return e, nil
}

// RecordActivity appends a depot exchange row for a rider and product.
func (s *AccountabilityService) RecordActivity(ctx context.Context, req *rider.RecordActivityRequest) (*rider.Activity, error) {
	if req.EmptyBottlesReceived < 0 || req.FilledBottlesSent < 0 || req.FilledBottlesReturned < 0 {
		return nil, xerrors.Validationf("activity quantities must not be negative")
	}

	if _, err := s.findRider(ctx, req.RiderID); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindActive(ctx, req.ProductID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("product %d", req.ProductID)
		}
		return nil, err
	}

	activityDate := time.Now().Truncate(24 * time.Hour)
	if req.ActivityDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ActivityDate)
		if err != nil {
			return nil, xerrors.Validationf("invalid activity date %q, want YYYY-MM-DD", req.ActivityDate)
		}
		activityDate = parsed
	}

	a := &rider.Activity{
		RiderID:               req.RiderID,
		ProductID:             req.ProductID,
		ActivityDate:          activityDate,
		EmptyBottlesReceived:  req.EmptyBottlesReceived,
		FilledBottlesSent:     req.FilledBottlesSent,
		FilledBottlesReturned: req.FilledBottlesReturned,
	}
	if req.Notes != "" {
		a.Notes.String = req.Notes
		a.Notes.Valid = true
	}

	if err := s.activityRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("rider activity recorded",
		zap.Int64("rider_id", a.RiderID),
		zap.Int64("product_id", a.ProductID),
		zap.Int("filled_sent", a.FilledBottlesSent),
		zap.Int("filled_returned", a.FilledBottlesReturned),
	)

	return a, nil
}

// GetAccountability reconciles one (rider, product) pair, optionally
// date-bounded. A pair with no activity at all reconciles to zero, Balanced.
func (s *AccountabilityService) GetAccountability(ctx context.Context, riderID, productID int64, from, to *time.Time) (*rider.Accountability, error) {
	r, err := s.findRider(ctx, riderID)
	if err != nil {
		return nil, err
	}

	p, err := s.productRepo.FindActive(ctx, productID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("product %d", productID)
		}
		return nil, err
	}

	acc, err := s.reconcilePair(ctx, riderID, productID, from, to)
	if err != nil {
		return nil, err
	}
	acc.RiderName = r.FullName
	acc.Product = p.Name

	return acc, nil
}

// GetDailyAccountability reconciles one pair for a single date.
func (s *AccountabilityService) GetDailyAccountability(ctx context.Context, riderID, productID int64, date time.Time) (*rider.Accountability, error) {
	day := date.Truncate(24 * time.Hour)
	return s.GetAccountability(ctx, riderID, productID, &day, &day)
}

func (s *AccountabilityService) reconcilePair(ctx context.Context, riderID, productID int64, from, to *time.Time) (*rider.Accountability, error) {
	sums, err := s.activityRepo.SumActivity(ctx, postgres.ActivitySumFilter{
		RiderID:   &riderID,
		ProductID: &productID,
		From:      from,
		To:        to,
	})
	if err != nil {
		return nil, err
	}

	sold, err := s.orderRepo.SumSoldByRider(ctx, riderID, productID, from, to)
	if err != nil {
		return nil, err
	}

	accountability := sums.FilledSent - sums.FilledReturned - sold

	return &rider.Accountability{
		RiderID:        riderID,
		ProductID:      productID,
		FilledSent:     sums.FilledSent,
		FilledReturned: sums.FilledReturned,
		Sold:           sold,
		Accountability: accountability,
		Status:         rider.StatusFor(accountability),
	}, nil
}

// GetComprehensiveReport reconciles every active rider against every active
// product, dropping pairs with no activity. A pair whose lookup fails is
// omitted and counted as skipped rather than aborting the whole report.
func (s *AccountabilityService) GetComprehensiveReport(ctx context.Context, from, to *time.Time) (*rider.ComprehensiveReport, error) {
	riders, err := s.employeeRepo.ListActiveRiders(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	report := &rider.ComprehensiveReport{Entries: []rider.Accountability{}}
	for _, r := range riders {
		for _, p := range products {
			acc, err := s.reconcilePair(ctx, r.ID, p.ID, from, to)
			if err != nil {
				report.Skipped++
				s.logger.Warn("skipping pair in accountability report",
					zap.Int64("rider_id", r.ID),
					zap.Int64("product_id", p.ID),
					zap.Error(err),
				)
				continue
			}

			if acc.FilledSent == 0 && acc.FilledReturned == 0 && acc.Sold == 0 {
				continue
			}

			acc.RiderName = r.FullName
			acc.Product = p.Name
			report.Entries = append(report.Entries, *acc)
		}
	}

	return report, nil
}

// ListActivities retrieves activity rows with filters.
func (s *AccountabilityService) ListActivities(ctx context.Context, filters *rider.ActivityListFilters) (*rider.ActivityListResponse, error) {
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

	activities, total, err := s.activityRepo.List(ctx, filters, from, to)
	if err != nil {
		return nil, err
	}

	return &rider.ActivityListResponse{
		Activities: activities,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
	}, nil
}
