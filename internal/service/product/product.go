// internal/service/product/product.go
package product

import (
	"context"

	"aquadesk-service/internal/domain/product"
	xerrors "aquadesk-service/internal/pkg/errors"
	"aquadesk-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type ProductService struct {
	productRepo *postgres.ProductRepository
	logger      *zap.Logger
}

func NewProductService(productRepo *postgres.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// checkPriceBounds enforces min <= base <= max for whichever bounds are set.
func checkPriceBounds(basePrice float64, minPrice, maxPrice *float64) error {
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		return xerrors.Validationf("min price %.2f exceeds max price %.2f", *minPrice, *maxPrice)
	}
	if minPrice != nil && basePrice < *minPrice {
		return xerrors.Validationf("base price %.2f is below the minimum %.2f", basePrice, *minPrice)
	}
	if maxPrice != nil && basePrice > *maxPrice {
		return xerrors.Validationf("base price %.2f is above the maximum %.2f", basePrice, *maxPrice)
	}
	return nil
}

// CreateProduct registers a new product.
func (s *ProductService) CreateProduct(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error) {
	if req.BasePrice <= 0 {
		return nil, xerrors.Validationf("base price must be positive, got %.2f", req.BasePrice)
	}
	if err := checkPriceBounds(req.BasePrice, req.MinPrice, req.MaxPrice); err != nil {
		return nil, err
	}

	p := &product.Product{
		Name:      req.Name,
		BasePrice: req.BasePrice,
		IsActive:  true,
	}
	if req.MinPrice != nil {
		p.MinPrice.Float64 = *req.MinPrice
		p.MinPrice.Valid = true
	}
	if req.MaxPrice != nil {
		p.MaxPrice.Float64 = *req.MaxPrice
		p.MaxPrice.Valid = true
	}
	if req.Description != "" {
		p.Description.String = req.Description
		p.Description.Valid = true
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create product", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("product created", zap.Int64("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// GetProduct retrieves a product by ID, deleted ones included.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("product %d", id)
		}
		return nil, err
	}
	return p, nil
}

// UpdateProduct applies the non-nil fields of the request, re-checking the
// price bounds against the resulting values.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req *product.UpdateProductRequest) (*product.Product, error) {
	p, err := s.productRepo.FindActive(ctx, id)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("product %d", id)
		}
		return nil, err
	}

	basePrice := p.BasePrice
	if req.BasePrice != nil {
		basePrice = *req.BasePrice
	}

	minPrice := req.MinPrice
	if minPrice == nil && p.MinPrice.Valid {
		minPrice = &p.MinPrice.Float64
	}
	maxPrice := req.MaxPrice
	if maxPrice == nil && p.MaxPrice.Valid {
		maxPrice = &p.MaxPrice.Float64
	}

	if err := checkPriceBounds(basePrice, minPrice, maxPrice); err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	p.BasePrice = basePrice
	if req.MinPrice != nil {
		p.MinPrice.Float64 = *req.MinPrice
		p.MinPrice.Valid = true
	}
	if req.MaxPrice != nil {
		p.MaxPrice.Float64 = *req.MaxPrice
		p.MaxPrice.Valid = true
	}
	if req.Description != nil {
		p.Description.String = *req.Description
		p.Description.Valid = *req.Description != ""
	}

	if err := s.productRepo.Update(ctx, id, p); err != nil {
		return nil, err
	}

	s.logger.Info("product updated", zap.Int64("product_id", id))
	return p, nil
}

// SetProductStatus activates or deactivates a product.
func (s *ProductService) SetProductStatus(ctx context.Context, id int64, isActive bool) error {
	if err := s.productRepo.UpdateStatus(ctx, id, isActive); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.NotFoundf("product %d", id)
		}
		return err
	}

	s.logger.Info("product status updated", zap.Int64("product_id", id), zap.Bool("is_active", isActive))
	return nil
}

// DeleteProduct soft-deletes a product. Order lines and balances referencing
// it stay intact.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepo.SoftDelete(ctx, id); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.NotFoundf("product %d", id)
		}
		return err
	}

	s.logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

// ListProducts retrieves products with filters.
func (s *ProductService) ListProducts(ctx context.Context, filters *product.ProductListFilters) (*product.ProductListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	if filters.PageSize > 100 {
		filters.PageSize = 100
	}

	products, total, err := s.productRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &product.ProductListResponse{
		Products: products,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}, nil
}
