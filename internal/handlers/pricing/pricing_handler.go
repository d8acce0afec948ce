// internal/handlers/pricing/pricing_handler.go
package pricing

import (
	"net/http"
	"strconv"

	"aquadesk-service/internal/domain/pricing"
	"aquadesk-service/internal/pkg/response"
	service "aquadesk-service/internal/service/pricing"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	pricingService *service.PricingService
}

func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
	}
}

func parsePairIDs(c *gin.Context) (int64, int64, bool) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid customer ID", err)
		return 0, 0, false
	}

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid product ID", err)
		return 0, 0, false
	}

	return customerID, productID, true
}

// ResolvePrice returns the effective unit price for a customer and product
func (h *PricingHandler) ResolvePrice(c *gin.Context) {
	customerID, productID, ok := parsePairIDs(c)
	if !ok {
		return
	}

	result, err := h.pricingService.ResolvePrice(c.Request.Context(), customerID, productID)
	if err != nil {
		response.FromError(c, "failed to resolve price", err)
		return
	}

	response.Success(c, http.StatusOK, "price resolved", result)
}

// SetCustomPrice sets a customer-specific price for a product
func (h *PricingHandler) SetCustomPrice(c *gin.Context) {
	var req pricing.SetCustomPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.pricingService.SetCustomPrice(c.Request.Context(), req.CustomerID, req.ProductID, req.Price)
	if err != nil {
		response.FromError(c, "failed to set custom price", err)
		return
	}

	response.Success(c, http.StatusOK, "custom price set", result)
}

// RemoveCustomPrice removes a customer-specific price, falling back to base
func (h *PricingHandler) RemoveCustomPrice(c *gin.Context) {
	customerID, productID, ok := parsePairIDs(c)
	if !ok {
		return
	}

	if err := h.pricingService.RemoveCustomPrice(c.Request.Context(), customerID, productID); err != nil {
		response.FromError(c, "failed to remove custom price", err)
		return
	}

	response.Success(c, http.StatusOK, "custom price removed", nil)
}

// ListCustomPrices retrieves active custom prices with filters
func (h *PricingHandler) ListCustomPrices(c *gin.Context) {
	var filters pricing.CustomPricingListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid filters", err)
		return
	}

	result, err := h.pricingService.ListCustomPrices(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list custom prices", err)
		return
	}

	response.Success(c, http.StatusOK, "custom prices retrieved", result)
}
