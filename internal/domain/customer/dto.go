// internal/domain/customer/dto.go
package customer

type CreateCustomerRequest struct {
	FullName       string   `json:"full_name" binding:"required,max=255"`
	PhoneNumber    string   `json:"phone_number" binding:"required,max=20"`
	AltPhoneNumber string   `json:"alt_phone_number" binding:"max=20"`
	Email          string   `json:"email" binding:"omitempty,email,max=255"`
	Address        string   `json:"address" binding:"max=500"`
	OpeningBottles int      `json:"opening_bottles" binding:"min=0"`
	Notes          string   `json:"notes"`
	Tags           []string `json:"tags"`
}

type UpdateCustomerRequest struct {
	FullName       *string  `json:"full_name" binding:"omitempty,max=255"`
	PhoneNumber    *string  `json:"phone_number" binding:"omitempty,max=20"`
	AltPhoneNumber *string  `json:"alt_phone_number" binding:"omitempty,max=20"`
	Email          *string  `json:"email" binding:"omitempty,email,max=255"`
	Address        *string  `json:"address" binding:"omitempty,max=500"`
	Notes          *string  `json:"notes"`
	Tags           []string `json:"tags"`
}

type CustomerListFilters struct {
	IsActive *bool    `form:"is_active"`
	Search   string   `form:"search"` // name, phone, email
	Tags     []string `form:"tags"`
	Page     int      `form:"page"`
	PageSize int      `form:"page_size"`
}

type CustomerListResponse struct {
	Customers []Customer `json:"customers"`
	Total     int64      `json:"total"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
}
