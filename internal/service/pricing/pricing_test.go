package pricing

import (
	"context"
	"database/sql"
	"testing"

	"aquadesk-service/internal/domain/customer"
	"aquadesk-service/internal/domain/pricing"
	"aquadesk-service/internal/domain/product"
	xerrors "aquadesk-service/internal/pkg/errors"

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

type pairKey struct {
	customerID int64
	productID  int64
}

type fakePricingStore struct {
	active map[pairKey]*pricing.CustomPricing
	nextID int64
}

func newFakePricingStore() *fakePricingStore {
	return &fakePricingStore{active: map[pairKey]*pricing.CustomPricing{}}
}

func (f *fakePricingStore) FindActive(_ context.Context, customerID, productID int64) (*pricing.CustomPricing, error) {
	cp, ok := f.active[pairKey{customerID, productID}]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	out := *cp
	return &out, nil
}

func (f *fakePricingStore) Upsert(_ context.Context, cp *pricing.CustomPricing) error {
	key := pairKey{cp.CustomerID, cp.ProductID}
	if existing, ok := f.active[key]; ok {
		existing.CustomPrice = cp.CustomPrice
		cp.ID = existing.ID
		cp.IsActive = true
		return nil
	}
	f.nextID++
	cp.ID = f.nextID
	cp.IsActive = true
	stored := *cp
	f.active[key] = &stored
	return nil
}

func (f *fakePricingStore) Deactivate(_ context.Context, customerID, productID int64) error {
	key := pairKey{customerID, productID}
	if _, ok := f.active[key]; !ok {
		return xerrors.ErrNotFound
	}
	delete(f.active, key)
	return nil
}

func (f *fakePricingStore) List(_ context.Context, _ *pricing.CustomPricingListFilters) ([]pricing.CustomPricing, int64, error) {
	out := []pricing.CustomPricing{}
	for _, cp := range f.active {
		out = append(out, *cp)
	}
	return out, int64(len(out)), nil
}

func boundedProduct(id int64, base, min, max float64) *product.Product {
	return &product.Product{
		ID:        id,
		Name:      "19L Bottle",
		BasePrice: base,
		MinPrice:  sql.NullFloat64{Float64: min, Valid: true},
		MaxPrice:  sql.NullFloat64{Float64: max, Valid: true},
		IsActive:  true,
	}
}

func newTestService(customers *fakeCustomers, products *fakeProducts, store *fakePricingStore) *PricingService {
	return NewPricingService(store, customers, products, zap.NewNop())
}

func TestResolvePrice_BaseWhenNoCustomRow(t *testing.T) {
	customers := &fakeCustomers{customers: map[int64]*customer.Customer{
		1: {ID: 1, FullName: "Ali Traders", IsActive: true},
	}}
	products := &fakeProducts{products: map[int64]*product.Product{
		10: {ID: 10, Name: "19L Bottle", BasePrice: 100, IsActive: true},
	}}
	svc := newTestService(customers, products, newFakePricingStore())

	resolved, err := svc.ResolvePrice(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 100.0, resolved.Price)
	assert.Equal(t, pricing.SourceBase, resolved.Source)
}

func TestResolvePrice_CustomWinsWhenActive(t *testing.T) {
	customers := &fakeCustomers{customers: map[int64]*customer.Customer{
		1: {ID: 1, IsActive: true},
	}}
	products := &fakeProducts{products: map[int64]*product.Product{
		10: boundedProduct(10, 100, 80, 120),
	}}
	store := newFakePricingStore()
	svc := newTestService(customers, products, store)

	_, err := svc.SetCustomPrice(context.Background(), 1, 10, 90)
	require.NoError(t, err)

	resolved, err := svc.ResolvePrice(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 90.0, resolved.Price)
	assert.Equal(t, pricing.SourceCustom, resolved.Source)
}

func TestResolvePrice_UnknownCustomer(t *testing.T) {
	products := &fakeProducts{products: map[int64]*product.Product{
		10: {ID: 10, BasePrice: 100, IsActive: true},
	}}
	svc := newTestService(&fakeCustomers{customers: map[int64]*customer.Customer{}}, products, newFakePricingStore())

	_, err := svc.ResolvePrice(context.Background(), 99, 10)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestResolvePrice_InactiveProduct(t *testing.T) {
	customers := &fakeCustomers{customers: map[int64]*customer.Customer{
		1: {ID: 1, IsActive: true},
	}}
	products := &fakeProducts{products: map[int64]*product.Product{
		10: {ID: 10, BasePrice: 100, IsActive: false},
	}}
	svc := newTestService(customers, products, newFakePricingStore())

	_, err := svc.ResolvePrice(context.Background(), 1, 10)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestSetCustomPrice_RejectsOutOfBounds(t *testing.T) {
	customers := &fakeCustomers{customers: map[int64]*customer.Customer{
		1: {ID: 1, IsActive: true},
	}}
	products := &fakeProducts{products: map[int64]*product.Product{
		10: boundedProduct(10, 100, 80, 120),
	}}
	store := newFakePricingStore()
	svc := newTestService(customers, products, store)

	_, err := svc.SetCustomPrice(context.Background(), 1, 10, 79.99)
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	_, err = svc.SetCustomPrice(context.Background(), 1, 10, 120.01)
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	// nothing was stored, resolution still uses the base price
	resolved, err := svc.ResolvePrice(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, pricing.SourceBase, resolved.Source)
}

func TestSetCustomPrice_BoundaryValuesAccepted(t *testing.T) {
	customers := &fakeCustomers{customers: map[int64]*customer.Customer{
		1: {ID: 1, IsActive: true},
	}}
	products := &fakeProducts{products: map[int64]*product.Product{
		10: boundedProduct(10, 100, 80, 120),
	}}
	svc := newTestService(customers, products, newFakePricingStore())

	_, err := svc.SetCustomPrice(context.Background(), 1, 10, 80)
	assert.NoError(t, err)

	_, err = svc.SetCustomPrice(context.Background(), 1, 10, 120)
	assert.NoError(t, err)
}

func TestSetCustomPrice_UpsertKeepsSingleActiveRow(t *testing.T) {
	customers := &fakeCustomers{customers: map[int64]*customer.Customer{
		1: {ID: 1, IsActive: true},
	}}
	products := &fakeProducts{products: map[int64]*product.Product{
		10: boundedProduct(10, 100, 80, 120),
	}}
	store := newFakePricingStore()
	svc := newTestService(customers, products, store)

	first, err := svc.SetCustomPrice(context.Background(), 1, 10, 85)
	require.NoError(t, err)

	second, err := svc.SetCustomPrice(context.Background(), 1, 10, 95)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.active, 1)

	resolved, err := svc.ResolvePrice(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 95.0, resolved.Price)
}

func TestRemoveCustomPrice_FallsBackToBase(t *testing.T) {
	customers := &fakeCustomers{customers: map[int64]*customer.Customer{
		1: {ID: 1, IsActive: true},
	}}
	products := &fakeProducts{products: map[int64]*product.Product{
		10: boundedProduct(10, 100, 80, 120),
	}}
	svc := newTestService(customers, products, newFakePricingStore())

	_, err := svc.SetCustomPrice(context.Background(), 1, 10, 90)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveCustomPrice(context.Background(), 1, 10))

	resolved, err := svc.ResolvePrice(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, pricing.SourceBase, resolved.Source)

	err = svc.RemoveCustomPrice(context.Background(), 1, 10)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestSetCustomPrice_NoBoundsAcceptsAnyPositive(t *testing.T) {
	customers := &fakeCustomers{customers: map[int64]*customer.Customer{
		1: {ID: 1, IsActive: true},
	}}
	products := &fakeProducts{products: map[int64]*product.Product{
		10: {ID: 10, BasePrice: 100, IsActive: true},
	}}
	svc := newTestService(customers, products, newFakePricingStore())

	_, err := svc.SetCustomPrice(context.Background(), 1, 10, 5)
	assert.NoError(t, err)

	_, err = svc.SetCustomPrice(context.Background(), 1, 10, -1)
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}
