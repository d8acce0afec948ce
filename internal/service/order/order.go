// internal/service/order/order.go
package order

import (
	"context"
	"math"
	"time"

	"aquadesk-service/internal/domain/customer"
	"aquadesk-service/internal/domain/employee"
	"aquadesk-service/internal/domain/order"
	"aquadesk-service/internal/domain/pricing"
	xerrors "aquadesk-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
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

// PriceResolver snapshots the effective unit price for a line at creation
// time.
type PriceResolver interface {
	ResolvePrice(ctx context.Context, customerID, productID int64) (*pricing.ResolvedPrice, error)
}

// OrderStore is the persistence contract for sell orders.
type OrderStore interface {
	InsertOrderAtomic(ctx context.Context, o *order.SellOrder) error
	FindByID(ctx context.Context, id int64) (*order.SellOrder, error)
	List(ctx context.Context, filters *order.OrderListFilters, from, to *time.Time) ([]order.SellOrder, int64, error)
	UpdateStatus(ctx context.Context, id int64, status order.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, status order.PaymentStatus) error
}

// OrderService creates sales. It is the single mutation point that grows a
// customer's delivered-bottle count; collections ride along on order lines.
type OrderService struct {
	orderRepo    OrderStore
	customerRepo CustomerFinder
	employeeRepo EmployeeFinder
	resolver     PriceResolver
	logger       *zap.Logger
}

func NewOrderService(orderRepo OrderStore, customerRepo CustomerFinder, employeeRepo EmployeeFinder, resolver PriceResolver, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		resolver:     resolver,
		logger:       logger,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *OrderService) generateOrderReference() string {
	return "ORD-" + ulid.Make().String()
}

// CreateOrder validates the request, snapshots a unit price per line through
// the pricing resolver, computes totals and persists header plus lines as one
// atomic unit. A failure on any line leaves nothing behind.
func (s *OrderService) CreateOrder(ctx context.Context, req *order.CreateOrderRequest) (*order.SellOrder, error) {
	if len(req.Lines) == 0 {
		return nil, xerrors.Validationf("order must have at least one line")
	}

	if _, err := s.customerRepo.FindActive(ctx, req.CustomerID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("customer %d", req.CustomerID)
		}
		return nil, err
	}

	o := &order.SellOrder{
		Reference:     s.generateOrderReference(),
		CustomerID:    req.CustomerID,
		Status:        order.StatusPending,
		PaymentStatus: order.PaymentPending,
	}

	if req.RiderID != nil {
		e, err := s.employeeRepo.FindActive(ctx, *req.RiderID)
		if err != nil {
			if xerrors.Is(err, xerrors.ErrNotFound) {
				return nil, xerrors.NotFoundf("rider %d", *req.RiderID)
			}
			return nil, err
		}
		if e.EmployeeType != employee.TypeRider {
			return nil, xerrors.Validationf("employee %d is a %s, not a rider", e.ID, e.EmployeeType)
		}
		o.RiderID.Int64 = e.ID
		o.RiderID.Valid = true
	}

	o.OrderDate = time.Now().Truncate(24 * time.Hour)
	if req.OrderDate != "" {
		parsed, err := time.Parse("2006-01-02", req.OrderDate)
		if err != nil {
			return nil, xerrors.Validationf("invalid order date %q, want YYYY-MM-DD", req.OrderDate)
		}
		o.OrderDate = parsed
	}

	if req.Notes != "" {
		o.Notes.String = req.Notes
		o.Notes.Valid = true
	}

	var total float64
	for _, input := range req.Lines {
		if input.Quantity <= 0 {
			return nil, xerrors.Validationf("quantity must be positive for product %d, got %d",
				input.ProductID, input.Quantity)
		}
		if input.EmptyBottlesCollected < 0 {
			return nil, xerrors.Validationf("empty bottles collected must not be negative for product %d",
				input.ProductID)
		}

		resolved, err := s.resolver.ResolvePrice(ctx, req.CustomerID, input.ProductID)
		if err != nil {
			return nil, err
		}

		lineTotal := round2(resolved.Price * float64(input.Quantity))
		total += lineTotal

		o.Lines = append(o.Lines, order.SellOrderLine{
			ProductID:             input.ProductID,
			Quantity:              input.Quantity,
			UnitPrice:             resolved.Price,
			LineTotal:             lineTotal,
			EmptyBottlesCollected: input.EmptyBottlesCollected,
		})
	}
	o.TotalAmount = round2(total)

	if err := s.orderRepo.InsertOrderAtomic(ctx, o); err != nil {
		s.logger.Error("failed to persist order",
			zap.String("reference", o.Reference),
			zap.Int64("customer_id", o.CustomerID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("reference", o.Reference),
		zap.Int64("customer_id", o.CustomerID),
		zap.Float64("total", o.TotalAmount),
		zap.Int("lines", len(o.Lines)),
	)

	return o, nil
}

// GetOrder retrieves an order with its lines.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*order.SellOrder, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// ListOrders retrieves order headers with filters.
func (s *OrderService) ListOrders(ctx context.Context, filters *order.OrderListFilters) (*order.OrderListResponse, error) {
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

	orders, total, err := s.orderRepo.List(ctx, filters, from, to)
	if err != nil {
		return nil, err
	}

	return &order.OrderListResponse{
		Orders:   orders,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}, nil
}

// UpdateStatus moves an order between pending, delivered and cancelled. No
// transition ordering is enforced; cancelling an order voids it for every
// ledger aggregate.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status order.OrderStatus) error {
	if !order.ValidStatus(status) {
		return xerrors.Validationf("unknown order status %q", status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.NotFoundf("order %d", id)
		}
		return err
	}

	s.logger.Info("order status updated", zap.Int64("order_id", id), zap.String("status", string(status)))
	return nil
}

// UpdatePaymentStatus flips an order between unpaid and paid.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id int64, status order.PaymentStatus) error {
	if !order.ValidPaymentStatus(status) {
		return xerrors.Validationf("unknown payment status %q", status)
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, id, status); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.NotFoundf("order %d", id)
		}
		return err
	}

	s.logger.Info("order payment status updated", zap.Int64("order_id", id), zap.String("payment_status", string(status)))
	return nil
}
