// internal/handlers/rider/rider_handler.go
package rider

import (
	"net/http"
	"strconv"
	"time"

	"aquadesk-service/internal/domain/rider"
	"aquadesk-service/internal/pkg/response"
	service "aquadesk-service/internal/service/rider"

	"github.com/gin-gonic/gin"
)

type RiderHandler struct {
	accountabilityService *service.AccountabilityService
}

func NewRiderHandler(accountabilityService *service.AccountabilityService) *RiderHandler {
	return &RiderHandler{
		accountabilityService: accountabilityService,
	}
}

func parseDateRange(c *gin.Context) (*time.Time, *time.Time, bool) {
	var q rider.AccountabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, "invalid query", err)
		return nil, nil, false
	}

	var from, to *time.Time
	if q.From != "" {
		parsed, err := time.Parse("2006-01-02", q.From)
		if err != nil {
			response.ValidationError(c, "invalid from date, want YYYY-MM-DD", err)
			return nil, nil, false
		}
		from = &parsed
	}
	if q.To != "" {
		parsed, err := time.Parse("2006-01-02", q.To)
		if err != nil {
			response.ValidationError(c, "invalid to date, want YYYY-MM-DD", err)
			return nil, nil, false
		}
		to = &parsed
	}

	return from, to, true
}

// RecordActivity records a depot exchange for a rider and product
func (h *RiderHandler) RecordActivity(c *gin.Context) {
	var req rider.RecordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.accountabilityService.RecordActivity(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to record activity", err)
		return
	}

	response.Success(c, http.StatusCreated, "activity recorded", result)
}

// ListActivities retrieves activity rows with filters
func (h *RiderHandler) ListActivities(c *gin.Context) {
	var filters rider.ActivityListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid filters", err)
		return
	}

	result, err := h.accountabilityService.ListActivities(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list activities", err)
		return
	}

	response.Success(c, http.StatusOK, "activities retrieved", result)
}

// GetAccountability reconciles one rider against one product, optionally
// date-bounded
func (h *RiderHandler) GetAccountability(c *gin.Context) {
	riderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid rider ID", err)
		return
	}

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid product ID", err)
		return
	}

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	result, err := h.accountabilityService.GetAccountability(c.Request.Context(), riderID, productID, from, to)
	if err != nil {
		response.FromError(c, "failed to reconcile accountability", err)
		return
	}

	response.Success(c, http.StatusOK, "accountability reconciled", result)
}

// GetDailyAccountability reconciles one rider against one product for a
// single date
func (h *RiderHandler) GetDailyAccountability(c *gin.Context) {
	riderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid rider ID", err)
		return
	}

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid product ID", err)
		return
	}

	date := time.Now()
	if v := c.Query("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.ValidationError(c, "invalid date, want YYYY-MM-DD", err)
			return
		}
		date = parsed
	}

	result, err := h.accountabilityService.GetDailyAccountability(c.Request.Context(), riderID, productID, date)
	if err != nil {
		response.FromError(c, "failed to reconcile accountability", err)
		return
	}

	response.Success(c, http.StatusOK, "accountability reconciled", result)
}

// GetComprehensiveReport reconciles every active rider against every active
// product
func (h *RiderHandler) GetComprehensiveReport(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	result, err := h.accountabilityService.GetComprehensiveReport(c.Request.Context(), from, to)
	if err != nil {
		response.FromError(c, "failed to build accountability report", err)
		return
	}

	response.Success(c, http.StatusOK, "accountability report built", result)
}
