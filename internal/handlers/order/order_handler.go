// internal/handlers/order/order_handler.go
package order

import (
	"net/http"
	"strconv"

	"aquadesk-service/internal/domain/order"
	"aquadesk-service/internal/pkg/response"
	service "aquadesk-service/internal/service/order"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// CreateOrder creates a sell order with one or more lines
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create order", err)
		return
	}

	response.Success(c, http.StatusCreated, "order created", result)
}

// GetOrder retrieves an order with its lines
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid order ID", err)
		return
	}

	result, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to retrieve order", err)
		return
	}

	response.Success(c, http.StatusOK, "order retrieved", result)
}

// ListOrders retrieves order headers with filters
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var filters order.OrderListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid filters", err)
		return
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list orders", err)
		return
	}

	response.Success(c, http.StatusOK, "orders retrieved", result)
}

// UpdateOrderStatus moves an order between pending, delivered and cancelled
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid order ID", err)
		return
	}

	var req order.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	if err := h.orderService.UpdateStatus(c.Request.Context(), id, order.OrderStatus(req.Status)); err != nil {
		response.FromError(c, "failed to update order status", err)
		return
	}

	response.Success(c, http.StatusOK, "order status updated", nil)
}

// UpdatePaymentStatus flips an order between unpaid and paid
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid order ID", err)
		return
	}

	var req order.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	if err := h.orderService.UpdatePaymentStatus(c.Request.Context(), id, order.PaymentStatus(req.PaymentStatus)); err != nil {
		response.FromError(c, "failed to update payment status", err)
		return
	}

	response.Success(c, http.StatusOK, "payment status updated", nil)
}
