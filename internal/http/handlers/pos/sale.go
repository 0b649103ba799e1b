package pos

import (
	"errors"
	"strconv"
	"time"

	"github.com/mobipos/mobipos/internal/constants"
	handlershared "github.com/mobipos/mobipos/internal/http/handlers/shared"
	"github.com/mobipos/mobipos/internal/http/response"
	"github.com/mobipos/mobipos/internal/repository"
	"github.com/mobipos/mobipos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SalePaymentRequest records an extra payment against a sale
type SalePaymentRequest struct {
	Method    string          `json:"method" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reference string          `json:"reference"`
}

// SaleStatusRequest moves a sale to a new status
type SaleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func parseDateParam(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}

// ListSales lists sales for the shop. Workers only see their own.
func (h *Handler) ListSales(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	shopID, ok := getShopID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.SaleListFilter{
		Page:          page,
		PageSize:      pageSize,
		ShopID:        shopID,
		Status:        c.Query("status"),
		PaymentMethod: c.Query("payment_method"),
		InvoiceNo:     c.Query("invoice_no"),
		DateFrom:      parseDateParam(c.Query("date_from")),
		DateTo:        parseDateParam(c.Query("date_to")),
	}
	if getRole(c) == constants.RoleWorker {
		filter.SellerID = uid
	}

	sales, total, err := h.SaleService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list sales", err)
		return
	}
	response.SuccessWithPage(c, sales, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetSale returns a single sale with items and payments
func (h *Handler) GetSale(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.SaleService.Get(shopID, id)
	if err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			respondError(c, response.CodeNotFound, "sale not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load sale", err)
		return
	}
	response.Success(c, sale)
}

// RecordSalePayment books a partial or settling payment on a sale
func (h *Handler) RecordSalePayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SalePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "method and amount are required", err)
		return
	}

	payment, err := h.SaleService.RecordPayment(shopID, id, req.Method, req.Amount, req.Reference, uid, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSaleNotFound):
			respondError(c, response.CodeNotFound, "sale not found", nil)
		case errors.Is(err, service.ErrInvalidPayment):
			respondError(c, response.CodeBadRequest, "unsupported payment method", nil)
		case errors.Is(err, service.ErrInvalidPaymentValue):
			respondError(c, response.CodeBadRequest, "invalid payment amount", nil)
		default:
			respondError(c, response.CodeInternal, "failed to record payment", err)
		}
		return
	}
	response.Success(c, payment)
}

// UpdateSaleStatus moves a sale through its lifecycle. Cancelling or
// returning restores the consumed units and refunds payments.
func (h *Handler) UpdateSaleStatus(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SaleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "status is required", err)
		return
	}

	sale, err := h.SaleService.ChangeStatus(shopID, id, req.Status, uid, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSaleNotFound):
			respondError(c, response.CodeNotFound, "sale not found", nil)
		case errors.Is(err, service.ErrInvalidSaleStatus):
			respondError(c, response.CodeBadRequest, "invalid status transition", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update sale", err)
		}
		return
	}
	response.Success(c, sale)
}

// DeleteSale reverses and removes a sale. Owner only: the reversal
// puts units back on the shelf and refunds the payments.
func (h *Handler) DeleteSale(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	if getRole(c) != constants.RoleOwner {
		respondError(c, response.CodeForbidden, "only the owner can delete sales", nil)
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.SaleService.Delete(shopID, id, uid, c.ClientIP()); err != nil {
		switch {
		case errors.Is(err, service.ErrSaleNotFound):
			respondError(c, response.CodeNotFound, "sale not found", nil)
		case errors.Is(err, service.ErrSaleNotDeletable):
			respondError(c, response.CodeBadRequest, "sale cannot be deleted", nil)
		default:
			respondError(c, response.CodeInternal, "failed to delete sale", err)
		}
		return
	}
	response.SuccessWithMsg(c, "sale deleted", nil)
}
