// internal/handlers/bottle/bottle_handler.go
package bottle

import (
	"net/http"
	"strconv"

	"aquadesk-service/internal/domain/bottle"
	"aquadesk-service/internal/pkg/response"
	service "aquadesk-service/internal/service/bottleledger"

	"github.com/gin-gonic/gin"
)

type BottleHandler struct {
	ledgerService *service.LedgerService
}

func NewBottleHandler(ledgerService *service.LedgerService) *BottleHandler {
	return &BottleHandler{
		ledgerService: ledgerService,
	}
}

// GetBalance computes the current bottle balance for a customer and product
func (h *BottleHandler) GetBalance(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid customer ID", err)
		return
	}

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid product ID", err)
		return
	}

	result, err := h.ledgerService.GetBalance(c.Request.Context(), customerID, productID)
	if err != nil {
		response.FromError(c, "failed to compute balance", err)
		return
	}

	response.Success(c, http.StatusOK, "balance computed", result)
}

// ListBalances computes balances for every product the customer holds
func (h *BottleHandler) ListBalances(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid customer ID", err)
		return
	}

	result, err := h.ledgerService.ListBalances(c.Request.Context(), customerID)
	if err != nil {
		response.FromError(c, "failed to list balances", err)
		return
	}

	response.Success(c, http.StatusOK, "balances computed", result)
}

// SetOpeningBottles sets the opening bottle count for a customer and product
func (h *BottleHandler) SetOpeningBottles(c *gin.Context) {
	var req bottle.SetOpeningBottlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	err := h.ledgerService.SetOpeningBottles(c.Request.Context(), req.CustomerID, req.ProductID, *req.OpeningBottles)
	if err != nil {
		response.FromError(c, "failed to set opening bottles", err)
		return
	}

	response.Success(c, http.StatusOK, "opening bottles set", nil)
}

// MigrateLegacyOpeningBottles copies legacy per-customer opening counts into
// per-product balance rows for the given product
func (h *BottleHandler) MigrateLegacyOpeningBottles(c *gin.Context) {
	var req struct {
		ProductID int64 `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.ledgerService.MigrateLegacyOpeningBottles(c.Request.Context(), req.ProductID)
	if err != nil {
		response.FromError(c, "failed to migrate opening bottles", err)
		return
	}

	response.Success(c, http.StatusOK, "legacy opening bottles migrated", result)
}
