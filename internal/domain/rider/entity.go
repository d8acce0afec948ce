// internal/domain/rider/entity.go
package rider

import (
	"database/sql"
	"time"
)

// Activity is one depot exchange with a rider for one product on one date.
// Rows are append-only; several rows per rider/product/day are allowed and
// are summed when reconciling.
type Activity struct {
	ID           int64     `json:"id" db:"id"`
	RiderID      int64     `json:"rider_id" db:"rider_id"`
	ProductID    int64     `json:"product_id" db:"product_id"`
	ActivityDate time.Time `json:"activity_date" db:"activity_date"`

	EmptyBottlesReceived  int `json:"empty_bottles_received" db:"empty_bottles_received"`
	FilledBottlesSent     int `json:"filled_bottles_sent" db:"filled_bottles_sent"`
	FilledBottlesReturned int `json:"filled_bottles_returned" db:"filled_bottles_returned"`

	Notes sql.NullString `json:"notes,omitempty" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Accountability status labels. Tests and the UI rely on the exact strings.
const (
	StatusOutstanding  = "Outstanding"
	StatusOverReturned = "Over-returned"
	StatusBalanced     = "Balanced"
)

// Accountability is the reconciled bottle position for a (rider, product)
// pair: filledSent - filledReturned - sold. Positive means the rider still
// holds bottles nothing accounts for; negative means they returned more than
// they were sent.
type Accountability struct {
	RiderID   int64  `json:"rider_id"`
	RiderName string `json:"rider_name,omitempty"`
	ProductID int64  `json:"product_id"`
	Product   string `json:"product,omitempty"`

	FilledSent     int `json:"filled_sent"`
	FilledReturned int `json:"filled_returned"`
	Sold           int `json:"sold"`
	Accountability int `json:"accountability"`

	Status string `json:"status"`
}

// StatusFor returns the display status for an accountability figure.
func StatusFor(accountability int) string {
	switch {
	case accountability > 0:
		return StatusOutstanding
	case accountability < 0:
		return StatusOverReturned
	default:
		return StatusBalanced
	}
}
