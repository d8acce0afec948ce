package order

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"aquadesk-service/internal/domain/bottle"
	"aquadesk-service/internal/domain/customer"
	"aquadesk-service/internal/domain/employee"
	"aquadesk-service/internal/domain/order"
	"aquadesk-service/internal/domain/pricing"
	"aquadesk-service/internal/domain/product"
	xerrors "aquadesk-service/internal/pkg/errors"
	"aquadesk-service/internal/repository/postgres"
	"aquadesk-service/internal/service/bottleledger"
	pricingsvc "aquadesk-service/internal/service/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCustomers struct {
	customers map[int64]*customer.Customer
}

func (f *fakeCustomers) FindActive(_ context.Context, id int64) (*customer.Customer, error) {
	c, ok := f.customers[id]
	if !ok || !c.IsActive {
		return nil, xerrors.ErrNotFound
	}
	return c, nil
}

type fakeEmployees struct {
	employees map[int64]*employee.Employee
}

func (f *fakeEmployees) FindActive(_ context.Context, id int64) (*employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok || !e.IsActive {
		return nil, xerrors.ErrNotFound
	}
	return e, nil
}

type fakeProducts struct {
	products map[int64]*product.Product
}

func (f *fakeProducts) FindActive(_ context.Context, id int64) (*product.Product, error) {
	p, ok := f.products[id]
	if !ok || !p.IsActive {
		return nil, xerrors.ErrNotFound
	}
	return p, nil
}

type pricingPair struct {
	customerID int64
	productID  int64
}

type fakePricingStore struct {
	active map[pricingPair]*pricing.CustomPricing
}

func newFakePricingStore() *fakePricingStore {
	return &fakePricingStore{active: map[pricingPair]*pricing.CustomPricing{}}
}

func (f *fakePricingStore) FindActive(_ context.Context, customerID, productID int64) (*pricing.CustomPricing, error) {
	cp, ok := f.active[pricingPair{customerID, productID}]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	out := *cp
	return &out, nil
}

func (f *fakePricingStore) Upsert(_ context.Context, cp *pricing.CustomPricing) error {
	stored := *cp
	f.active[pricingPair{cp.CustomerID, cp.ProductID}] = &stored
	return nil
}

func (f *fakePricingStore) Deactivate(_ context.Context, customerID, productID int64) error {
	delete(f.active, pricingPair{customerID, productID})
	return nil
}

func (f *fakePricingStore) List(_ context.Context, _ *pricing.CustomPricingListFilters) ([]pricing.CustomPricing, int64, error) {
	return nil, 0, nil
}

// memoryOrders is an in-memory stand-in for the sell-order repository. It
// backs both the order service and the bottle ledger's line summation so the
// end-to-end scenarios exercise the real read-side derivation.
type memoryOrders struct {
	orders []order.SellOrder
	nextID int64
}

func (m *memoryOrders) InsertOrderAtomic(_ context.Context, o *order.SellOrder) error {
	m.nextID++
	o.ID = m.nextID
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	for i := range o.Lines {
		o.Lines[i].OrderID = o.ID
	}
	stored := *o
	stored.Lines = append([]order.SellOrderLine(nil), o.Lines...)
	m.orders = append(m.orders, stored)
	return nil
}

func (m *memoryOrders) FindByID(_ context.Context, id int64) (*order.SellOrder, error) {
	for i := range m.orders {
		if m.orders[i].ID == id {
			out := m.orders[i]
			out.Lines = append([]order.SellOrderLine(nil), m.orders[i].Lines...)
			return &out, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (m *memoryOrders) List(_ context.Context, _ *order.OrderListFilters, _, _ *time.Time) ([]order.SellOrder, int64, error) {
	return m.orders, int64(len(m.orders)), nil
}

func (m *memoryOrders) UpdateStatus(_ context.Context, id int64, status order.OrderStatus) error {
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			return nil
		}
	}
	return xerrors.ErrNotFound
}

func (m *memoryOrders) UpdatePaymentStatus(_ context.Context, id int64, status order.PaymentStatus) error {
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].PaymentStatus = status
			return nil
		}
	}
	return xerrors.ErrNotFound
}

func (m *memoryOrders) SumOrderLines(_ context.Context, filter postgres.LineSumFilter) (postgres.LineSums, error) {
	var sums postgres.LineSums
	for _, o := range m.orders {
		if o.Status == order.StatusCancelled {
			continue
		}
		if filter.CustomerID != nil && o.CustomerID != *filter.CustomerID {
			continue
		}
		for _, l := range o.Lines {
			if filter.ProductID != nil && l.ProductID != *filter.ProductID {
				continue
			}
			sums.Delivered += l.Quantity
			sums.Collected += l.EmptyBottlesCollected
		}
	}
	return sums, nil
}

type memoryOpenings struct {
	openings map[pricingPair]int
}

func (m *memoryOpenings) GetOpeningBottles(_ context.Context, customerID, productID int64) (int, error) {
	return m.openings[pricingPair{customerID, productID}], nil
}

func (m *memoryOpenings) SetOpeningBottles(_ context.Context, customerID, productID int64, value int) error {
	m.openings[pricingPair{customerID, productID}] = value
	return nil
}

func (m *memoryOpenings) ListForCustomer(_ context.Context, customerID int64) ([]bottle.CustomerProductBalance, error) {
	rows := []bottle.CustomerProductBalance{}
	for key, opening := range m.openings {
		if key.customerID == customerID {
			rows = append(rows, bottle.CustomerProductBalance{
				CustomerID:     key.customerID,
				ProductID:      key.productID,
				OpeningBottles: opening,
			})
		}
	}
	return rows, nil
}

func (m *memoryOpenings) CustomersWithLegacyOpeningBottles(_ context.Context, _ int64) (map[int64]int, error) {
	return map[int64]int{}, nil
}

type fixture struct {
	orders   *memoryOrders
	openings *memoryOpenings
	pricings *fakePricingStore
	pricing  *pricingsvc.PricingService
	ledger   *bottleledger.LedgerService
	svc      *OrderService
}

func newFixture() *fixture {
	customers := &fakeCustomers{customers: map[int64]*customer.Customer{
		1: {ID: 1, FullName: "Hassan General Store", IsActive: true},
		2: {ID: 2, FullName: "Closed Shop", IsActive: false},
	}}
	employees := &fakeEmployees{employees: map[int64]*employee.Employee{
		5: {ID: 5, FullName: "Danish", EmployeeType: employee.TypeRider, IsActive: true},
		6: {ID: 6, FullName: "Manager", EmployeeType: employee.TypeManager, IsActive: true},
	}}
	products := &fakeProducts{products: map[int64]*product.Product{
		10: {
			ID: 10, Name: "19L Bottle", BasePrice: 100, IsActive: true,
			MinPrice: sql.NullFloat64{Float64: 80, Valid: true},
			MaxPrice: sql.NullFloat64{Float64: 120, Valid: true},
		},
		11: {ID: 11, Name: "6L Bottle", BasePrice: 40, IsActive: true},
		12: {ID: 12, Name: "Retired SKU", BasePrice: 70, IsActive: false},
	}}

	orders := &memoryOrders{}
	openings := &memoryOpenings{openings: map[pricingPair]int{}}
	pricings := newFakePricingStore()

	logger := zap.NewNop()
	resolver := pricingsvc.NewPricingService(pricings, customers, products, logger)
	ledger := bottleledger.NewLedgerService(openings, orders, customers, products, logger)
	svc := NewOrderService(orders, customers, employees, resolver, logger)

	return &fixture{
		orders:   orders,
		openings: openings,
		pricings: pricings,
		pricing:  resolver,
		ledger:   ledger,
		svc:      svc,
	}
}

func TestCreateOrder_EndToEndBalance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.ledger.SetOpeningBottles(ctx, 1, 10, 5))

	created, err := f.svc.CreateOrder(ctx, &order.CreateOrderRequest{
		CustomerID: 1,
		OrderDate:  "2026-08-15",
		Lines: []order.CreateOrderLineInput{
			{ProductID: 10, Quantity: 3, EmptyBottlesCollected: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, created.Lines, 1)
	assert.Equal(t, 100.0, created.Lines[0].UnitPrice)
	assert.Equal(t, 300.0, created.Lines[0].LineTotal)
	assert.Equal(t, 300.0, created.TotalAmount)
	assert.Equal(t, order.StatusPending, created.Status)
	assert.NotEmpty(t, created.Reference)

	b, err := f.ledger.GetBalance(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, b.OpeningBottles)
	assert.Equal(t, 3, b.TotalDelivered)
	assert.Equal(t, 1, b.TotalCollected)
	assert.Equal(t, 7, b.CurrentBalance)
}

func TestCreateOrder_SnapshotsCustomPrice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.pricing.SetCustomPrice(ctx, 1, 10, 90)
	require.NoError(t, err)

	created, err := f.svc.CreateOrder(ctx, &order.CreateOrderRequest{
		CustomerID: 1,
		Lines:      []order.CreateOrderLineInput{{ProductID: 10, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 90.0, created.Lines[0].UnitPrice)
	assert.Equal(t, 180.0, created.Lines[0].LineTotal)

	// changing the custom price later must not touch the stored snapshot
	_, err = f.pricing.SetCustomPrice(ctx, 1, 10, 110)
	require.NoError(t, err)

	stored, err := f.svc.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 90.0, stored.Lines[0].UnitPrice)
	assert.Equal(t, 180.0, stored.TotalAmount)

	resolved, err := f.pricing.ResolvePrice(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 110.0, resolved.Price)
}

func TestCreateOrder_MultiLineTotals(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.CreateOrder(ctx, &order.CreateOrderRequest{
		CustomerID: 1,
		RiderID:    int64Ptr(5),
		Lines: []order.CreateOrderLineInput{
			{ProductID: 10, Quantity: 3, EmptyBottlesCollected: 2},
			{ProductID: 11, Quantity: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, created.TotalAmount) // 3x100 + 5x40
	assert.True(t, created.RiderID.Valid)
	assert.Equal(t, int64(5), created.RiderID.Int64)
}

func TestCreateOrder_AtomicOnInvalidLine(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, &order.CreateOrderRequest{
		CustomerID: 1,
		Lines: []order.CreateOrderLineInput{
			{ProductID: 10, Quantity: 3},
			{ProductID: 12, Quantity: 1}, // inactive product
		},
	})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
	assert.Empty(t, f.orders.orders, "no header or lines may persist for a failed order")

	b, err := f.ledger.GetBalance(ctx, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, b.TotalDelivered)
}

func TestCreateOrder_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, &order.CreateOrderRequest{CustomerID: 1})
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	_, err = f.svc.CreateOrder(ctx, &order.CreateOrderRequest{
		CustomerID: 1,
		Lines:      []order.CreateOrderLineInput{{ProductID: 10, Quantity: 0}},
	})
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	_, err = f.svc.CreateOrder(ctx, &order.CreateOrderRequest{
		CustomerID: 2, // inactive
		Lines:      []order.CreateOrderLineInput{{ProductID: 10, Quantity: 1}},
	})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	_, err = f.svc.CreateOrder(ctx, &order.CreateOrderRequest{
		CustomerID: 1,
		RiderID:    int64Ptr(6), // manager, not rider
		Lines:      []order.CreateOrderLineInput{{ProductID: 10, Quantity: 1}},
	})
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	assert.Empty(t, f.orders.orders)
}

func TestCancelledOrderLeavesLedger(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.CreateOrder(ctx, &order.CreateOrderRequest{
		CustomerID: 1,
		Lines:      []order.CreateOrderLineInput{{ProductID: 10, Quantity: 4, EmptyBottlesCollected: 2}},
	})
	require.NoError(t, err)

	b, err := f.ledger.GetBalance(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, b.CurrentBalance)

	require.NoError(t, f.svc.UpdateStatus(ctx, created.ID, order.StatusCancelled))

	b, err = f.ledger.GetBalance(ctx, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, b.TotalDelivered)
	assert.Zero(t, b.TotalCollected)
	assert.Zero(t, b.CurrentBalance)
}

func TestUpdateStatus_UnknownOrder(t *testing.T) {
	f := newFixture()

	err := f.svc.UpdateStatus(context.Background(), 999, order.StatusDelivered)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	err = f.svc.UpdateStatus(context.Background(), 999, order.OrderStatus("shipped"))
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func int64Ptr(v int64) *int64 { return &v }
