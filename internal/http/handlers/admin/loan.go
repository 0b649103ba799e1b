package admin

import (
	"errors"
	"time"

	"github.com/mobipos/mobipos/internal/http/response"
	"github.com/mobipos/mobipos/internal/repository"
	"github.com/mobipos/mobipos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// LoanRequest opens an installment plan
type LoanRequest struct {
	CustomerID       uint            `json:"customer_id" binding:"required"`
	SaleID           *uint           `json:"sale_id"`
	PrincipalAmount  decimal.Decimal `json:"principal_amount" binding:"required"`
	InstallmentCount int             `json:"installment_count" binding:"required"`
	IntervalDays     int             `json:"interval_days"`
	StartDate        *time.Time      `json:"start_date"`
	Notes            string          `json:"notes"`
}

// InstallmentPaymentRequest applies a repayment to one slot
type InstallmentPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

func loanErrorCode(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLoanNotFound):
		respondError(c, response.CodeNotFound, "loan not found", nil)
	case errors.Is(err, service.ErrCustomerNotFound):
		respondError(c, response.CodeNotFound, "customer not found", nil)
	case errors.Is(err, service.ErrSaleNotFound):
		respondError(c, response.CodeNotFound, "sale not found", nil)
	case errors.Is(err, service.ErrInstallmentNotFound):
		respondError(c, response.CodeNotFound, "installment not found", nil)
	case errors.Is(err, service.ErrInvalidInstallments):
		respondError(c, response.CodeBadRequest, "invalid principal or installment count", nil)
	case errors.Is(err, service.ErrInvalidPaymentValue):
		respondError(c, response.CodeBadRequest, "invalid payment amount", nil)
	case errors.Is(err, service.ErrLoanClosed):
		respondError(c, response.CodeBadRequest, "loan is not active", nil)
	default:
		respondError(c, response.CodeInternal, "loan operation failed", err)
	}
}

// ListLoans lists installment plans
func (h *Handler) ListLoans(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	page, pageSize := getPagination(c)

	loans, total, err := h.LoanService.List(repository.LoanListFilter{
		Page:       page,
		PageSize:   pageSize,
		ShopID:     shopID,
		CustomerID: parseUintQuery(c, "customer_id"),
		Status:     c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list loans", err)
		return
	}
	response.SuccessWithPage(c, loans, pageMeta(page, pageSize, total))
}

// GetLoan returns a loan with its schedule
func (h *Handler) GetLoan(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	loan, err := h.LoanService.Get(shopID, id)
	if err != nil {
		loanErrorCode(c, err)
		return
	}
	response.Success(c, loan)
}

// CreateLoan opens a loan with an equal-split schedule
func (h *Handler) CreateLoan(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	var req LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "customer_id, principal_amount and installment_count are required", err)
		return
	}

	startDate := time.Time{}
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	loan, err := h.LoanService.Create(service.CreateLoanInput{
		ShopID:           shopID,
		CustomerID:       req.CustomerID,
		SaleID:           req.SaleID,
		PrincipalAmount:  req.PrincipalAmount,
		InstallmentCount: req.InstallmentCount,
		IntervalDays:     req.IntervalDays,
		StartDate:        startDate,
		Notes:            req.Notes,
		ActorID:          uid,
		ClientIP:         c.ClientIP(),
	})
	if err != nil {
		loanErrorCode(c, err)
		return
	}
	response.Success(c, loan)
}

// RecordInstallmentPayment applies a repayment to an installment slot
func (h *Handler) RecordInstallmentPayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	loanID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	installmentID, ok := parseIDParam(c, "installment_id")
	if !ok {
		return
	}
	var req InstallmentPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "amount is required", err)
		return
	}

	loan, err := h.LoanService.RecordInstallmentPayment(service.RecordInstallmentInput{
		ShopID:        shopID,
		LoanID:        loanID,
		InstallmentID: installmentID,
		Amount:        req.Amount,
		ActorID:       uid,
		ClientIP:      c.ClientIP(),
	})
	if err != nil {
		loanErrorCode(c, err)
		return
	}
	response.Success(c, loan)
}

// MarkLoanDefaulted flags an active loan as defaulted
func (h *Handler) MarkLoanDefaulted(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	loan, err := h.LoanService.MarkDefaulted(shopID, id)
	if err != nil {
		loanErrorCode(c, err)
		return
	}
	response.Success(c, loan)
}
