// internal/handlers/employee/employee_handler.go
package employee

import (
	"net/http"
	"strconv"

	"aquadesk-service/internal/domain/employee"
	"aquadesk-service/internal/pkg/response"
	service "aquadesk-service/internal/service/employee"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// CreateEmployee creates a new employee
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req employee.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.employeeService.CreateEmployee(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create employee", err)
		return
	}

	response.Success(c, http.StatusCreated, "employee created", result)
}

// GetEmployee retrieves an employee by ID
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid employee ID", err)
		return
	}

	result, err := h.employeeService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to retrieve employee", err)
		return
	}

	response.Success(c, http.StatusOK, "employee retrieved", result)
}

// UpdateEmployee updates an employee's details
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid employee ID", err)
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.employeeService.UpdateEmployee(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update employee", err)
		return
	}

	response.Success(c, http.StatusOK, "employee updated", result)
}

// SetEmployeeStatus activates or deactivates an employee
func (h *EmployeeHandler) SetEmployeeStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid employee ID", err)
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	if err := h.employeeService.SetEmployeeStatus(c.Request.Context(), id, *req.IsActive); err != nil {
		response.FromError(c, "failed to update employee status", err)
		return
	}

	response.Success(c, http.StatusOK, "employee status updated", nil)
}

// DeleteEmployee soft-deletes an employee
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid employee ID", err)
		return
	}

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete employee", err)
		return
	}

	response.Success(c, http.StatusOK, "employee deleted", nil)
}

// ListEmployees retrieves employees with filters
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var filters employee.EmployeeListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid filters", err)
		return
	}

	result, err := h.employeeService.ListEmployees(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list employees", err)
		return
	}

	response.Success(c, http.StatusOK, "employees retrieved", result)
}
