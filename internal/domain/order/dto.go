// internal/domain/order/dto.go
package order

type CreateOrderLineInput struct {
	ProductID             int64 `json:"product_id" binding:"required"`
	Quantity              int   `json:"quantity" binding:"required"`
	EmptyBottlesCollected int   `json:"empty_bottles_collected" binding:"min=0"`
}

type CreateOrderRequest struct {
	CustomerID int64                  `json:"customer_id" binding:"required"`
	RiderID    *int64                 `json:"rider_id"`
	OrderDate  string                 `json:"order_date"` // YYYY-MM-DD, defaults to today
	Notes      string                 `json:"notes"`
	Lines      []CreateOrderLineInput `json:"lines" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending delivered cancelled"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=pending paid"`
}

type OrderListFilters struct {
	CustomerID *int64 `form:"customer_id"`
	RiderID    *int64 `form:"rider_id"`
	Status     string `form:"status" binding:"omitempty,oneof=pending delivered cancelled"`
	From       string `form:"from"` // YYYY-MM-DD
	To         string `form:"to"`   // YYYY-MM-DD
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type OrderListResponse struct {
	Orders   []SellOrder `json:"orders"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
