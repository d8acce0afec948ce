package finance

import (
	"context"
	"testing"
	"time"

	"aquadesk-service/internal/domain/customer"
	"aquadesk-service/internal/domain/employee"
	"aquadesk-service/internal/domain/finance"
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

type fakeAdvances struct {
	advances []finance.Advance
	nextID   int64
}

func (f *fakeAdvances) Create(_ context.Context, a *finance.Advance) error {
	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Now()
	f.advances = append(f.advances, *a)
	return nil
}

func (f *fakeAdvances) SumForParty(_ context.Context, party finance.AdvanceParty, partyID int64, from, to *time.Time) (float64, error) {
	var total float64
	for _, a := range f.advances {
		if a.Party != party || a.PartyID != partyID {
			continue
		}
		if from != nil && a.ReceivedOn.Before(*from) {
			continue
		}
		if to != nil && a.ReceivedOn.After(*to) {
			continue
		}
		total += a.Amount
	}
	return total, nil
}

func (f *fakeAdvances) ListForParty(_ context.Context, party finance.AdvanceParty, partyID int64) ([]finance.Advance, error) {
	out := []finance.Advance{}
	for _, a := range f.advances {
		if a.Party == party && a.PartyID == partyID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeExpenditures struct {
	expenditures []finance.Expenditure
	nextID       int64
}

func (f *fakeExpenditures) Create(_ context.Context, e *finance.Expenditure) error {
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = time.Now()
	f.expenditures = append(f.expenditures, *e)
	return nil
}

func (f *fakeExpenditures) List(_ context.Context, _ *finance.ExpenditureListFilters, _, _ *time.Time) ([]finance.Expenditure, int64, error) {
	return f.expenditures, int64(len(f.expenditures)), nil
}

func (f *fakeExpenditures) SummarizeByCategory(_ context.Context, from, to time.Time) ([]finance.ExpenditureSummary, error) {
	totals := map[string]float64{}
	order := []string{}
	for _, e := range f.expenditures {
		if e.SpentOn.Before(from) || e.SpentOn.After(to) {
			continue
		}
		if _, ok := totals[e.Category]; !ok {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount
	}
	out := []finance.ExpenditureSummary{}
	for _, category := range order {
		out = append(out, finance.ExpenditureSummary{Category: category, Total: totals[category]})
	}
	return out, nil
}

type fakeSales struct {
	sales map[int64]float64
}

func (f *fakeSales) SumSalesAmount(_ context.Context, customerID int64) (float64, error) {
	return f.sales[customerID], nil
}

type fixture struct {
	advances     *fakeAdvances
	expenditures *fakeExpenditures
	sales        *fakeSales
	svc          *FinanceService
}

func newFixture() *fixture {
	customers := &fakeCustomers{customers: map[int64]*customer.Customer{
		1: {ID: 1, FullName: "Noor Traders", IsActive: true},
	}}
	employees := &fakeEmployees{employees: map[int64]*employee.Employee{
		5: {ID: 5, FullName: "Danish", EmployeeType: employee.TypeRider, MonthlySalary: 30000, IsActive: true},
	}}
	advances := &fakeAdvances{}
	expenditures := &fakeExpenditures{}
	sales := &fakeSales{sales: map[int64]float64{}}

	svc := NewFinanceService(advances, expenditures, sales, customers, employees, zap.NewNop())
	return &fixture{advances: advances, expenditures: expenditures, sales: sales, svc: svc}
}

func TestGetCustomerLedger_Outstanding(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.sales.sales[1] = 1500

	_, err := f.svc.RecordCustomerAdvance(ctx, &finance.RecordAdvanceRequest{PartyID: 1, Amount: 400})
	require.NoError(t, err)
	_, err = f.svc.RecordCustomerAdvance(ctx, &finance.RecordAdvanceRequest{PartyID: 1, Amount: 100})
	require.NoError(t, err)

	ledger, err := f.svc.GetCustomerLedger(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, ledger.TotalSales)
	assert.Equal(t, 500.0, ledger.TotalAdvances)
	assert.Equal(t, 1000.0, ledger.Outstanding)
}

func TestGetCustomerLedger_AdvancesExceedSales(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.sales.sales[1] = 300

	_, err := f.svc.RecordCustomerAdvance(ctx, &finance.RecordAdvanceRequest{PartyID: 1, Amount: 500})
	require.NoError(t, err)

	ledger, err := f.svc.GetCustomerLedger(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, -200.0, ledger.Outstanding, "credit balances surface as negative outstanding")
}

func TestGetEmployeeLedger_MonthScoped(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.RecordEmployeeAdvance(ctx, &finance.RecordAdvanceRequest{
		PartyID: 5, Amount: 5000, ReceivedOn: "2026-08-10",
	})
	require.NoError(t, err)
	_, err = f.svc.RecordEmployeeAdvance(ctx, &finance.RecordAdvanceRequest{
		PartyID: 5, Amount: 2000, ReceivedOn: "2026-07-28",
	})
	require.NoError(t, err)

	ledger, err := f.svc.GetEmployeeLedger(ctx, 5, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 30000.0, ledger.MonthlySalary)
	assert.Equal(t, 5000.0, ledger.TotalAdvances, "only the requested month's advances count")
	assert.Equal(t, 25000.0, ledger.NetPayable)

	_, err = f.svc.GetEmployeeLedger(ctx, 5, "August 2026")
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestRecordAdvance_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.RecordCustomerAdvance(ctx, &finance.RecordAdvanceRequest{PartyID: 1, Amount: 0})
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	_, err = f.svc.RecordCustomerAdvance(ctx, &finance.RecordAdvanceRequest{PartyID: 1, Amount: -50})
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	_, err = f.svc.RecordCustomerAdvance(ctx, &finance.RecordAdvanceRequest{PartyID: 99, Amount: 100})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	_, err = f.svc.RecordEmployeeAdvance(ctx, &finance.RecordAdvanceRequest{PartyID: 99, Amount: 100})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	_, err = f.svc.RecordCustomerAdvance(ctx, &finance.RecordAdvanceRequest{
		PartyID: 1, Amount: 100, ReceivedOn: "15-08-2026",
	})
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	assert.Empty(t, f.advances.advances)
}

func TestRecordExpenditure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	e, err := f.svc.RecordExpenditure(ctx, &finance.RecordExpenditureRequest{
		Category: "fuel", Amount: 1200.505, SpentOn: "2026-08-12", Notes: "weekly diesel",
	})
	require.NoError(t, err)
	assert.Equal(t, 1200.51, e.Amount)
	assert.True(t, e.Notes.Valid)

	_, err = f.svc.RecordExpenditure(ctx, &finance.RecordExpenditureRequest{Category: "", Amount: 10})
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	_, err = f.svc.RecordExpenditure(ctx, &finance.RecordExpenditureRequest{Category: "fuel", Amount: -10})
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestMonthlyExpenditureSummary(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, req := range []*finance.RecordExpenditureRequest{
		{Category: "fuel", Amount: 500, SpentOn: "2026-08-02"},
		{Category: "fuel", Amount: 300, SpentOn: "2026-08-20"},
		{Category: "rent", Amount: 8000, SpentOn: "2026-08-01"},
		{Category: "fuel", Amount: 999, SpentOn: "2026-07-30"}, // previous month
	} {
		_, err := f.svc.RecordExpenditure(ctx, req)
		require.NoError(t, err)
	}

	summary, err := f.svc.MonthlyExpenditureSummary(ctx, "2026-08")
	require.NoError(t, err)
	require.Len(t, summary, 2)

	byCategory := map[string]float64{}
	for _, s := range summary {
		byCategory[s.Category] = s.Total
	}
	assert.Equal(t, 800.0, byCategory["fuel"])
	assert.Equal(t, 8000.0, byCategory["rent"])

	_, err = f.svc.MonthlyExpenditureSummary(ctx, "2026/08")
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestListAdvances(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.RecordCustomerAdvance(ctx, &finance.RecordAdvanceRequest{PartyID: 1, Amount: 250})
	require.NoError(t, err)

	advances, err := f.svc.ListAdvances(ctx, finance.PartyCustomer, 1)
	require.NoError(t, err)
	require.Len(t, advances, 1)
	assert.Equal(t, 250.0, advances[0].Amount)

	_, err = f.svc.ListAdvances(ctx, finance.AdvanceParty("vendor"), 1)
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}
