// internal/domain/finance/entity.go
package finance

import (
	"database/sql"
	"time"
)

// AdvanceParty distinguishes who an advance payment belongs to.
type AdvanceParty string

const (
	PartyCustomer AdvanceParty = "customer"
	PartyEmployee AdvanceParty = "employee"
)

// Advance is money received from a customer ahead of billing, or paid to an
// employee ahead of salary.
type Advance struct {
	ID         int64        `json:"id" db:"id"`
	Party      AdvanceParty `json:"party" db:"party"`
	PartyID    int64        `json:"party_id" db:"party_id"`
	Amount     float64      `json:"amount" db:"amount"`
	ReceivedOn time.Time    `json:"received_on" db:"received_on"`

	Notes sql.NullString `json:"notes,omitempty" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Expenditure struct {
	ID       int64     `json:"id" db:"id"`
	Category string    `json:"category" db:"category"`
	Amount   float64   `json:"amount" db:"amount"`
	SpentOn  time.Time `json:"spent_on" db:"spent_on"`

	Notes sql.NullString `json:"notes,omitempty" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CustomerLedger is a running receivable: what the customer has bought less
// what they have paid ahead.
type CustomerLedger struct {
	CustomerID    int64   `json:"customer_id"`
	TotalSales    float64 `json:"total_sales"`
	TotalAdvances float64 `json:"total_advances"`
	Outstanding   float64 `json:"outstanding"`
}

// EmployeeLedger is the month's payable: salary less advances already taken.
type EmployeeLedger struct {
	EmployeeID    int64   `json:"employee_id"`
	Month         string  `json:"month"` // YYYY-MM
	MonthlySalary float64 `json:"monthly_salary"`
	TotalAdvances float64 `json:"total_advances"`
	NetPayable    float64 `json:"net_payable"`
}

type ExpenditureSummary struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}
