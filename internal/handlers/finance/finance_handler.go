// internal/handlers/finance/finance_handler.go
package finance

import (
	"net/http"
	"strconv"

	"aquadesk-service/internal/domain/finance"
	"aquadesk-service/internal/pkg/response"
	service "aquadesk-service/internal/service/finance"

	"github.com/gin-gonic/gin"
)

type FinanceHandler struct {
	financeService *service.FinanceService
}

func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
	}
}

// RecordCustomerAdvance records money received from a customer ahead of billing
func (h *FinanceHandler) RecordCustomerAdvance(c *gin.Context) {
	var req finance.RecordAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.financeService.RecordCustomerAdvance(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to record advance", err)
		return
	}

	response.Success(c, http.StatusCreated, "advance recorded", result)
}

// RecordEmployeeAdvance records a salary advance paid to an employee
func (h *FinanceHandler) RecordEmployeeAdvance(c *gin.Context) {
	var req finance.RecordAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.financeService.RecordEmployeeAdvance(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to record advance", err)
		return
	}

	response.Success(c, http.StatusCreated, "advance recorded", result)
}

// ListCustomerAdvances retrieves a customer's advances, newest first
func (h *FinanceHandler) ListCustomerAdvances(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid customer ID", err)
		return
	}

	result, err := h.financeService.ListAdvances(c.Request.Context(), finance.PartyCustomer, id)
	if err != nil {
		response.FromError(c, "failed to list advances", err)
		return
	}

	response.Success(c, http.StatusOK, "advances retrieved", result)
}

// ListEmployeeAdvances retrieves an employee's advances, newest first
func (h *FinanceHandler) ListEmployeeAdvances(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid employee ID", err)
		return
	}

	result, err := h.financeService.ListAdvances(c.Request.Context(), finance.PartyEmployee, id)
	if err != nil {
		response.FromError(c, "failed to list advances", err)
		return
	}

	response.Success(c, http.StatusOK, "advances retrieved", result)
}

// GetCustomerLedger derives a customer's receivable position
func (h *FinanceHandler) GetCustomerLedger(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid customer ID", err)
		return
	}

	result, err := h.financeService.GetCustomerLedger(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to compute ledger", err)
		return
	}

	response.Success(c, http.StatusOK, "ledger computed", result)
}

// GetEmployeeLedger derives an employee's net payable for a month
func (h *FinanceHandler) GetEmployeeLedger(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid employee ID", err)
		return
	}

	month := c.Query("month")
	if month == "" {
		response.ValidationError(c, "month query parameter is required (YYYY-MM)", nil)
		return
	}

	result, err := h.financeService.GetEmployeeLedger(c.Request.Context(), id, month)
	if err != nil {
		response.FromError(c, "failed to compute ledger", err)
		return
	}

	response.Success(c, http.StatusOK, "ledger computed", result)
}

// RecordExpenditure records an operating expense
func (h *FinanceHandler) RecordExpenditure(c *gin.Context) {
	var req finance.RecordExpenditureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.financeService.RecordExpenditure(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to record expenditure", err)
		return
	}

	response.Success(c, http.StatusCreated, "expenditure recorded", result)
}

// ListExpenditures retrieves expenditures with filters
func (h *FinanceHandler) ListExpenditures(c *gin.Context) {
	var filters finance.ExpenditureListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid filters", err)
		return
	}

	result, err := h.financeService.ListExpenditures(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list expenditures", err)
		return
	}

	response.Success(c, http.StatusOK, "expenditures retrieved", result)
}

// GetMonthlyExpenditureSummary totals expenditures per category for a month
func (h *FinanceHandler) GetMonthlyExpenditureSummary(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		response.ValidationError(c, "month query parameter is required (YYYY-MM)", nil)
		return
	}

	result, err := h.financeService.MonthlyExpenditureSummary(c.Request.Context(), month)
	if err != nil {
		response.FromError(c, "failed to summarize expenditures", err)
		return
	}

	response.Success(c, http.StatusOK, "expenditure summary computed", result)
}
