// internal/domain/pricing/dto.go
package pricing

type SetCustomPriceRequest struct {
	CustomerID int64   `json:"customer_id" binding:"required"`
	ProductID  int64   `json:"product_id" binding:"required"`
	Price      float64 `json:"price" binding:"required,gt=0"`
}

type CustomPricingListFilters struct {
	CustomerID *int64 `form:"customer_id"`
	ProductID  *int64 `form:"product_id"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type CustomPricingListResponse struct {
	Pricings []CustomPricing `json:"pricings"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}
