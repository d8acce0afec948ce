// internal/service/pricing/pricing.go
package pricing

import (
	"context"

	"aquadesk-service/internal/domain/customer"
	"aquadesk-service/internal/domain/pricing"
	"aquadesk-service/internal/domain/product"
	xerrors "aquadesk-service/internal/pkg/errors"

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

// PricingStore is the persistence contract for custom price rows.
type PricingStore interface {
	FindActive(ctx context.Context, customerID, productID int64) (*pricing.CustomPricing, error)
	Upsert(ctx context.Context, cp *pricing.CustomPricing) error
	Deactivate(ctx context.Context, customerID, productID int64) error
	List(ctx context.Context, filters *pricing.CustomPricingListFilters) ([]pricing.CustomPricing, int64, error)
}

type PricingService struct {
	pricingRepo  PricingStore
	customerRepo CustomerFinder
	productRepo  ProductFinder
	logger       *zap.Logger
}

func NewPricingService(pricingRepo PricingStore, customerRepo CustomerFinder, productRepo ProductFinder, logger *zap.Logger) *PricingService {
	return &PricingService{
		pricingRepo:  pricingRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// ResolvePrice returns the effective unit price for a (customer, product)
// pair: the active custom price when one exists, the product's base price
// otherwise. Read-only.
func (s *PricingService) ResolvePrice(ctx context.Context, customerID, productID int64) (*pricing.ResolvedPrice, error) {
	if _, err := s.customerRepo.FindActive(ctx, customerID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("customer %d", customerID)
		}
		return nil, err
	}

	p, err := s.productRepo.FindActive(ctx, productID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("product %d", productID)
		}
		return nil, err
	}

	cp, err := s.pricingRepo.FindActive(ctx, customerID, productID)
	if err == nil {
		return &pricing.ResolvedPrice{Price: cp.CustomPrice, Source: pricing.SourceCustom}, nil
	}
	if !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}

	return &pricing.ResolvedPrice{Price: p.BasePrice, Source: pricing.SourceBase}, nil
}

// SetCustomPrice validates the price against the product's bounds and
// replaces the pair's active custom price (insert when absent). Out-of-range
// prices are rejected, never clamped.
func (s *PricingService) SetCustomPrice(ctx context.Context, customerID, productID int64, price float64) (*pricing.CustomPricing, error) {
	if price <= 0 {
		return nil, xerrors.Validationf("custom price must be positive, got %.2f", price)
	}

	if _, err := s.customerRepo.FindActive(ctx, customerID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("customer %d", customerID)
		}
		return nil, err
	}

	p, err := s.productRepo.FindActive(ctx, productID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("product %d", productID)
		}
		return nil, err
	}

	if p.MinPrice.Valid && price < p.MinPrice.Float64 {
		return nil, xerrors.Validationf("price %.2f is below the minimum %.2f for product %s",
			price, p.MinPrice.Float64, p.Name)
	}
	if p.MaxPrice.Valid && price > p.MaxPrice.Float64 {
		return nil, xerrors.Validationf("price %.2f is above the maximum %.2f for product %s",
			price, p.MaxPrice.Float64, p.Name)
	}

	cp := &pricing.CustomPricing{
		CustomerID:  customerID,
		ProductID:   productID,
		CustomPrice: price,
	}

	if err := s.pricingRepo.Upsert(ctx, cp); err != nil {
		s.logger.Error("failed to upsert custom price",
			zap.Int64("customer_id", customerID),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("custom price set",
		zap.Int64("customer_id", customerID),
		zap.Int64("product_id", productID),
		zap.Float64("price", price),
	)

	return cp, nil
}

// RemoveCustomPrice deactivates the pair's active custom price.
func (s *PricingService) RemoveCustomPrice(ctx context.Context, customerID, productID int64) error {
	if err := s.pricingRepo.Deactivate(ctx, customerID, productID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.NotFoundf("no active custom price for customer %d product %d", customerID, productID)
		}
		return err
	}

	s.logger.Info("custom price removed",
		zap.Int64("customer_id", customerID),
		zap.Int64("product_id", productID),
	)

	return nil
}

// ListCustomPrices retrieves active custom prices with filters.
func (s *PricingService) ListCustomPrices(ctx context.Context, filters *pricing.CustomPricingListFilters) (*pricing.CustomPricingListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	if filters.PageSize > 100 {
		filters.PageSize = 100
	}

	pricings, total, err := s.pricingRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &pricing.CustomPricingListResponse{
		Pricings: pricings,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}, nil
}
