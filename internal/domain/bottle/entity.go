// internal/domain/bottle/entity.go
package bottle

import "time"

// CustomerProductBalance is the authoritative per-(customer, product) opening
// bottle record. Delivered and collected totals are never stored here; they
// are re-derived from sell order history on every read.
type CustomerProductBalance struct {
	ID             int64 `json:"id" db:"id"`
	CustomerID     int64 `json:"customer_id" db:"customer_id"`
	ProductID      int64 `json:"product_id" db:"product_id"`
	OpeningBottles int   `json:"opening_bottles" db:"opening_bottles"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Balance is the derived bottle position for a (customer, product) pair.
// CurrentBalance can go negative when more was collected than the opening
// stock plus deliveries account for; that is surfaced as-is.
type Balance struct {
	CustomerID     int64 `json:"customer_id"`
	ProductID      int64 `json:"product_id"`
	OpeningBottles int   `json:"opening_bottles"`
	TotalDelivered int   `json:"total_delivered"`
	TotalCollected int   `json:"total_collected"`
	CurrentBalance int   `json:"current_balance"`
}
