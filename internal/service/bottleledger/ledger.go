// internal/service/bottleledger/ledger.go
package bottleledger

import (
	"context"

	"aquadesk-service/internal/domain/bottle"
	"aquadesk-service/internal/domain/customer"
	"aquadesk-service/internal/domain/product"
	xerrors "aquadesk-service/internal/pkg/errors"
	"aquadesk-service/internal/repository/postgres"

	"go.uber.org/zap"
)

// CustomerFinder resolves active customers.
type CustomerFinder interface {
	FindActive(ctx context.Context, id int64) (*customer.Customer, error)
}

// ProductFinder resolves active products.
type ProductFinder interface {
	FindActive(ctx context.Context, id int64) (*product.Product, error)
}

// OpeningStore is the persistence contract for opening-bottle records.
type OpeningStore interface {
	GetOpeningBottles(ctx context.Context, customerID, productID int64) (int, error)
	SetOpeningBottles(ctx context.Context, customerID, productID int64, value int) error
	ListForCustomer(ctx context.Context, customerID int64) ([]bottle.CustomerProductBalance, error)
	CustomersWithLegacyOpeningBottles(ctx context.Context, productID int64) (map[int64]int, error)
}

// LineSummer aggregates sell-order lines; only non-cancelled orders count.
type LineSummer interface {
	SumOrderLines(ctx context.Context, filter postgres.LineSumFilter) (postgres.LineSums, error)
}

// LedgerService derives customer bottle balances. It owns no mutable state
// beyond the opening-bottle records: delivered and collected are re-summed
// from order history on every read, so they cannot drift from the sales
// record.
type LedgerService struct {
	openingRepo  OpeningStore
	orderRepo    LineSummer
	customerRepo CustomerFinder
	productRepo  ProductFinder
	logger       *zap.Logger
}

func NewLedgerService(openingRepo OpeningStore, orderRepo LineSummer, customerRepo CustomerFinder, productRepo ProductFinder, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		openingRepo:  openingRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// GetBalance computes the current bottle position for a (customer, product)
// pair: opening + delivered - collected. A negative balance is a data-quality
// signal and is returned as-is.
func (s *LedgerService) GetBalance(ctx context.Context, customerID, productID int64) (*bottle.Balance, error) {
	if _, err := s.customerRepo.FindActive(ctx, customerID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("customer %d", customerID)
		}
		return nil, err
	}

	if _, err := s.productRepo.FindActive(ctx, productID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("product %d", productID)
		}
		return nil, err
	}

	return s.computeBalance(ctx, customerID, productID)
}

func (s *LedgerService) computeBalance(ctx context.Context, customerID, productID int64) (*bottle.Balance, error) {
	opening, err := s.openingRepo.GetOpeningBottles(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}

	sums, err := s.orderRepo.SumOrderLines(ctx, postgres.LineSumFilter{
		CustomerID: &customerID,
		ProductID:  &productID,
	})
	if err != nil {
		return nil, err
	}

	return &bottle.Balance{
		CustomerID:     customerID,
		ProductID:      productID,
		OpeningBottles: opening,
		TotalDelivered: sums.Delivered,
		TotalCollected: sums.Collected,
		CurrentBalance: opening + sums.Delivered - sums.Collected,
	}, nil
}

// ListBalances computes balances for every product the customer has an
// opening-bottle record for.
func (s *LedgerService) ListBalances(ctx context.Context, customerID int64) ([]bottle.Balance, error) {
	if _, err := s.customerRepo.FindActive(ctx, customerID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("customer %d", customerID)
		}
		return nil, err
	}

	rows, err := s.openingRepo.ListForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	balances := []bottle.Balance{}
	for _, row := range rows {
		b, err := s.computeBalance(ctx, customerID, row.ProductID)
		if err != nil {
			return nil, err
		}
		balances = append(balances, *b)
	}

	return balances, nil
}

// SetOpeningBottles upserts the opening count for a pair. Setting the same
// value twice is a no-op, not additive.
func (s *LedgerService) SetOpeningBottles(ctx context.Context, customerID, productID int64, value int) error {
	if value < 0 {
		return xerrors.Validationf("opening bottles must not be negative, got %d", value)
	}

	if _, err := s.customerRepo.FindActive(ctx, customerID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.NotFoundf("customer %d", customerID)
		}
		return err
	}

	if _, err := s.productRepo.FindActive(ctx, productID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.NotFoundf("product %d", productID)
		}
		return err
	}

	if err := s.openingRepo.SetOpeningBottles(ctx, customerID, productID, value); err != nil {
		return err
	}

	s.logger.Info("opening bottles set",
		zap.Int64("customer_id", customerID),
		zap.Int64("product_id", productID),
		zap.Int("opening_bottles", value),
	)

	return nil
}

// MigrateLegacyOpeningBottles copies each customer's deprecated single-product
// opening_bottles field into a per-product balance row for the given product.
// Customers that already have a row for the product are left alone, so the
// migration can be re-run safely.
func (s *LedgerService) MigrateLegacyOpeningBottles(ctx context.Context, productID int64) (*bottle.MigrationResult, error) {
	if _, err := s.productRepo.FindActive(ctx, productID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("product %d", productID)
		}
		return nil, err
	}

	legacy, err := s.openingRepo.CustomersWithLegacyOpeningBottles(ctx, productID)
	if err != nil {
		return nil, err
	}

	migrated := 0
	for customerID, opening := range legacy {
		if err := s.openingRepo.SetOpeningBottles(ctx, customerID, productID, opening); err != nil {
			return nil, xerrors.Wrap(err, "legacy opening-bottle migration aborted")
		}
		migrated++
	}

	s.logger.Info("legacy opening bottles migrated",
		zap.Int64("product_id", productID),
		zap.Int("customers", migrated),
	)

	return &bottle.MigrationResult{CustomersMigrated: migrated}, nil
}
