// internal/domain/employee/dto.go
package employee

type CreateEmployeeRequest struct {
	FullName      string  `json:"full_name" binding:"required,max=255"`
	PhoneNumber   string  `json:"phone_number" binding:"required,max=20"`
	EmployeeType  string  `json:"employee_type" binding:"required,oneof=worker manager rider"`
	MonthlySalary float64 `json:"monthly_salary" binding:"min=0"`
	Notes         string  `json:"notes"`
}

type UpdateEmployeeRequest struct {
	FullName      *string  `json:"full_name" binding:"omitempty,max=255"`
	PhoneNumber   *string  `json:"phone_number" binding:"omitempty,max=20"`
	EmployeeType  *string  `json:"employee_type" binding:"omitempty,oneof=worker manager rider"`
	MonthlySalary *float64 `json:"monthly_salary" binding:"omitempty,min=0"`
	Notes         *string  `json:"notes"`
}

type EmployeeListFilters struct {
	IsActive     *bool  `form:"is_active"`
	EmployeeType string `form:"employee_type" binding:"omitempty,oneof=worker manager rider"`
	Search       string `form:"search"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

type EmployeeListResponse struct {
	Employees []Employee `json:"employees"`
	Total     int64      `json:"total"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
}
