// internal/domain/product/dto.go
package product

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	BasePrice   float64  `json:"base_price" binding:"required,gt=0"`
	MinPrice    *float64 `json:"min_price" binding:"omitempty,gt=0"`
	MaxPrice    *float64 `json:"max_price" binding:"omitempty,gt=0"`
	Description string   `json:"description"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	BasePrice   *float64 `json:"base_price" binding:"omitempty,gt=0"`
	MinPrice    *float64 `json:"min_price" binding:"omitempty,gt=0"`
	MaxPrice    *float64 `json:"max_price" binding:"omitempty,gt=0"`
	Description *string  `json:"description"`
}

type ProductListFilters struct {
	IsActive *bool  `form:"is_active"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}
