// internal/handlers/customer/customer_handler.go
package customer

import (
	"net/http"
	"strconv"

	"aquadesk-service/internal/domain/customer"
	"aquadesk-service/internal/pkg/response"
	service "aquadesk-service/internal/service/customer"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService *service.CustomerService
}

func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomer creates a new customer
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.customerService.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create customer", err)
		return
	}

	response.Success(c, http.StatusCreated, "customer created", result)
}

// GetCustomer retrieves a customer by ID
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid customer ID", err)
		return
	}

	result, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to retrieve customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer retrieved", result)
}

// UpdateCustomer updates a customer's details
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid customer ID", err)
		return
	}

	var req customer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.customerService.UpdateCustomer(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer updated", result)
}

// SetCustomerStatus activates or deactivates a customer
func (h *CustomerHandler) SetCustomerStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid customer ID", err)
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	if err := h.customerService.SetCustomerStatus(c.Request.Context(), id, *req.IsActive); err != nil {
		response.FromError(c, "failed to update customer status", err)
		return
	}

	response.Success(c, http.StatusOK, "customer status updated", nil)
}

// DeleteCustomer soft-deletes a customer
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid customer ID", err)
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer deleted", nil)
}

// ListCustomers retrieves customers with filters
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var filters customer.CustomerListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid filters", err)
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list customers", err)
		return
	}

	response.Success(c, http.StatusOK, "customers retrieved", result)
}
