// internal/domain/pricing/entity.go
package pricing

import "time"

// PriceSource tells callers where a resolved unit price came from.
type PriceSource string

const (
	SourceCustom PriceSource = "custom"
	SourceBase   PriceSource = "base"
)

// CustomPricing is a customer-specific override of a product's base price.
// Rows are deactivated, never deleted; at most one active row per
// (customer, product) pair.
type CustomPricing struct {
	ID          int64   `json:"id" db:"id"`
	CustomerID  int64   `json:"customer_id" db:"customer_id"`
	ProductID   int64   `json:"product_id" db:"product_id"`
	CustomPrice float64 `json:"custom_price" db:"custom_price"`
	IsActive    bool    `json:"is_active" db:"is_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ResolvedPrice is the pricing resolver's output: the effective unit price
// for a (customer, product) pair and which rule produced it.
type ResolvedPrice struct {
	Price  float64     `json:"price"`
	Source PriceSource `json:"source"`
}
