// internal/domain/order/entity.go
package order

import (
	"database/sql"
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s PaymentStatus) bool {
	return s == PaymentPending || s == PaymentPaid
}

// SellOrder is an order header. Lines and their snapshotted unit prices are
// immutable once the order is created; only status fields change afterwards.
type SellOrder struct {
	ID        int64  `json:"id" db:"id"`
	Reference string `json:"reference" db:"reference"`

	CustomerID int64         `json:"customer_id" db:"customer_id"`
	RiderID    sql.NullInt64 `json:"rider_id,omitempty" db:"rider_id"`
	OrderDate  time.Time     `json:"order_date" db:"order_date"`

	Status        OrderStatus   `json:"status" db:"status"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`

	TotalAmount float64        `json:"total_amount" db:"total_amount"`
	Notes       sql.NullString `json:"notes,omitempty" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Lines []SellOrderLine `json:"lines,omitempty"`
}

type SellOrderLine struct {
	ID        int64 `json:"id" db:"id"`
	OrderID   int64 `json:"order_id" db:"order_id"`
	ProductID int64 `json:"product_id" db:"product_id"`

	Quantity  int     `json:"quantity" db:"quantity"`
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
	LineTotal float64 `json:"line_total" db:"line_total"`

	// Empty bottles the customer handed back with this delivery. Counted
	// against the customer's bottle balance the moment the order commits.
	EmptyBottlesCollected int `json:"empty_bottles_collected" db:"empty_bottles_collected"`
}
