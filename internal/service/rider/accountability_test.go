package rider

import (
	"context"
	"errors"
	"testing"
	"time"

	"aquadesk-service/internal/domain/employee"
	"aquadesk-service/internal/domain/product"
	"aquadesk-service/internal/domain/rider"
	xerrors "aquadesk-service/internal/pkg/errors"
	"aquadesk-service/internal/repository/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

func (f *fakeEmployees) ListActiveRiders(_ context.Context) ([]employee.Employee, error) {
	riders := []employee.Employee{}
	for _, e := range f.employees {
		if e.IsActive && e.EmployeeType == employee.TypeRider {
			riders = append(riders, *e)
		}
	}
	return riders, nil
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

func (f *fakeProducts) ListActive(_ context.Context) ([]product.Product, error) {
	out := []product.Product{}
	for _, p := range f.products {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeActivityStore struct {
	rows []rider.Activity
}

func (f *fakeActivityStore) Create(_ context.Context, a *rider.Activity) error {
	a.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, *a)
	return nil
}

func matchesDate(d time.Time, from, to *time.Time) bool {
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}

func (f *fakeActivityStore) SumActivity(_ context.Context, filter postgres.ActivitySumFilter) (postgres.ActivitySums, error) {
	var sums postgres.ActivitySums
	for _, a := range f.rows {
		if filter.RiderID != nil && a.RiderID != *filter.RiderID {
			continue
		}
		if filter.ProductID != nil && a.ProductID != *filter.ProductID {
			continue
		}
		if !matchesDate(a.ActivityDate, filter.From, filter.To) {
			continue
		}
		sums.FilledSent += a.FilledBottlesSent
		sums.FilledReturned += a.FilledBottlesReturned
	}
	return sums, nil
}

func (f *fakeActivityStore) List(_ context.Context, _ *rider.ActivityListFilters, _, _ *time.Time) ([]rider.Activity, int64, error) {
	return f.rows, int64(len(f.rows)), nil
}

type soldKey struct {
	riderID   int64
	productID int64
}

type fakeSoldSums struct {
	sold    map[soldKey]int
	failFor *soldKey
}

func (f *fakeSoldSums) SumSoldByRider(_ context.Context, riderID, productID int64, _, _ *time.Time) (int, error) {
	if f.failFor != nil && f.failFor.riderID == riderID && f.failFor.productID == productID {
		return 0, errors.New("aggregation failed")
	}
	return f.sold[soldKey{riderID, productID}], nil
}

func testFixtures() (*fakeEmployees, *fakeProducts) {
	employees := &fakeEmployees{employees: map[int64]*employee.Employee{
		1: {ID: 1, FullName: "Danish", EmployeeType: employee.TypeRider, IsActive: true},
		2: {ID: 2, FullName: "Umar", EmployeeType: employee.TypeRider, IsActive: true},
		3: {ID: 3, FullName: "Shop Manager", EmployeeType: employee.TypeManager, IsActive: true},
	}}
	products := &fakeProducts{products: map[int64]*product.Product{
		10: {ID: 10, Name: "19L Bottle", BasePrice: 100, IsActive: true},
		11: {ID: 11, Name: "6L Bottle", BasePrice: 40, IsActive: true},
	}}
	return employees, products
}

func sent(riderID, productID int64, filledSent, filledReturned int) rider.Activity {
	return rider.Activity{
		RiderID:               riderID,
		ProductID:             productID,
		ActivityDate:          time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		FilledBottlesSent:     filledSent,
		FilledBottlesReturned: filledReturned,
	}
}

func TestGetAccountability_SignConvention(t *testing.T) {
	tests := []struct {
		name       string
		filledSent int
		returned   int
		sold       int
		want       int
		wantStatus string
	}{
		{"outstanding", 100, 20, 70, 10, rider.StatusOutstanding},
		{"over-returned", 50, 10, 60, -20, rider.StatusOverReturned},
		{"balanced", 30, 10, 20, 0, rider.StatusBalanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			employees, products := testFixtures()
			activities := &fakeActivityStore{rows: []rider.Activity{
				sent(1, 10, tt.filledSent, tt.returned),
			}}
			orders := &fakeSoldSums{sold: map[soldKey]int{{1, 10}: tt.sold}}
			svc := NewAccountabilityService(activities, orders, employees, products, zap.NewNop())

			acc, err := svc.GetAccountability(context.Background(), 1, 10, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.filledSent, acc.FilledSent)
			assert.Equal(t, tt.returned, acc.FilledReturned)
			assert.Equal(t, tt.sold, acc.Sold)
			assert.Equal(t, tt.want, acc.Accountability)
			assert.Equal(t, tt.wantStatus, acc.Status)
		})
	}
}

func TestGetAccountability_ZeroActivityIsBalanced(t *testing.T) {
	employees, products := testFixtures()
	svc := NewAccountabilityService(&fakeActivityStore{}, &fakeSoldSums{sold: map[soldKey]int{}}, employees, products, zap.NewNop())

	acc, err := svc.GetAccountability(context.Background(), 1, 10, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, acc.FilledSent)
	assert.Zero(t, acc.FilledReturned)
	assert.Zero(t, acc.Sold)
	assert.Zero(t, acc.Accountability)
	assert.Equal(t, rider.StatusBalanced, acc.Status)
}

func TestGetAccountability_MultipleRowsPerDaySummed(t *testing.T) {
	employees, products := testFixtures()
	activities := &fakeActivityStore{rows: []rider.Activity{
		sent(1, 10, 40, 5),
		sent(1, 10, 30, 10),
	}}
	orders := &fakeSoldSums{sold: map[soldKey]int{{1, 10}: 50}}
	svc := NewAccountabilityService(activities, orders, employees, products, zap.NewNop())

	acc, err := svc.GetAccountability(context.Background(), 1, 10, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 70, acc.FilledSent)
	assert.Equal(t, 15, acc.FilledReturned)
	assert.Equal(t, 5, acc.Accountability)
}

func TestGetAccountability_NonRiderEmployeeRejected(t *testing.T) {
	employees, products := testFixtures()
	svc := NewAccountabilityService(&fakeActivityStore{}, &fakeSoldSums{}, employees, products, zap.NewNop())

	_, err := svc.GetAccountability(context.Background(), 3, 10, nil, nil)
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestGetDailyAccountability_RestrictsToDate(t *testing.T) {
	employees, products := testFixtures()
	day1 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	activities := &fakeActivityStore{rows: []rider.Activity{
		{RiderID: 1, ProductID: 10, ActivityDate: day1, FilledBottlesSent: 20},
		{RiderID: 1, ProductID: 10, ActivityDate: day2, FilledBottlesSent: 30, FilledBottlesReturned: 5},
	}}
	orders := &fakeSoldSums{sold: map[soldKey]int{}}
	svc := NewAccountabilityService(activities, orders, employees, products, zap.NewNop())

	acc, err := svc.GetDailyAccountability(context.Background(), 1, 10, day2)
	require.NoError(t, err)
	assert.Equal(t, 30, acc.FilledSent)
	assert.Equal(t, 5, acc.FilledReturned)
	assert.Equal(t, 25, acc.Accountability)
}

func TestGetComprehensiveReport_FiltersZeroActivityPairs(t *testing.T) {
	employees, products := testFixtures()
	activities := &fakeActivityStore{rows: []rider.Activity{
		sent(1, 10, 25, 5),
	}}
	orders := &fakeSoldSums{sold: map[soldKey]int{{1, 10}: 15, {2, 11}: 4}}
	svc := NewAccountabilityService(activities, orders, employees, products, zap.NewNop())

	report, err := svc.GetComprehensiveReport(context.Background(), nil, nil)
	require.NoError(t, err)

	// rider 1 x product 10 has depot activity; rider 2 x product 11 has sales
	// only. Everything else is silent and must not appear.
	require.Len(t, report.Entries, 2)
	byPair := map[soldKey]rider.Accountability{}
	for _, e := range report.Entries {
		byPair[soldKey{e.RiderID, e.ProductID}] = e
	}
	assert.Equal(t, 5, byPair[soldKey{1, 10}].Accountability)
	assert.Equal(t, -4, byPair[soldKey{2, 11}].Accountability)
	assert.Zero(t, report.Skipped)
}

func TestGetComprehensiveReport_SkipsFailingPair(t *testing.T) {
	employees, products := testFixtures()
	activities := &fakeActivityStore{rows: []rider.Activity{
		sent(1, 10, 25, 5),
		sent(2, 11, 12, 2),
	}}
	orders := &fakeSoldSums{
		sold:    map[soldKey]int{},
		failFor: &soldKey{2, 11},
	}
	svc := NewAccountabilityService(activities, orders, employees, products, zap.NewNop())

	report, err := svc.GetComprehensiveReport(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, int64(1), report.Entries[0].RiderID)
	assert.Equal(t, 1, report.Skipped)
}

func TestRecordActivity_Validation(t *testing.T) {
	employees, products := testFixtures()
	store := &fakeActivityStore{}
	svc := NewAccountabilityService(store, &fakeSoldSums{}, employees, products, zap.NewNop())

	_, err := svc.RecordActivity(context.Background(), &rider.RecordActivityRequest{
		RiderID: 1, ProductID: 10, FilledBottlesSent: -1,
	})
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	_, err = svc.RecordActivity(context.Background(), &rider.RecordActivityRequest{
		RiderID: 99, ProductID: 10, FilledBottlesSent: 10,
	})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	_, err = svc.RecordActivity(context.Background(), &rider.RecordActivityRequest{
		RiderID: 1, ProductID: 10, ActivityDate: "01-08-2026",
	})
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	a, err := svc.RecordActivity(context.Background(), &rider.RecordActivityRequest{
		RiderID: 1, ProductID: 10, ActivityDate: "2026-08-01",
		FilledBottlesSent: 40, FilledBottlesReturned: 10, EmptyBottlesReceived: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), a.ActivityDate)
	assert.Len(t, store.rows, 1)
}
