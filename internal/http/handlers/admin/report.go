package admin

import (
	"time"

	"github.com/mobipos/mobipos/internal/http/response"
	"github.com/mobipos/mobipos/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListPayments lists payment rows
func (h *Handler) ListPayments(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	page, pageSize := getPagination(c)

	payments, total, err := h.PaymentService.List(repository.PaymentListFilter{
		Page:     page,
		PageSize: pageSize,
		ShopID:   shopID,
		SaleID:   parseUintQuery(c, "sale_id"),
		Method:   c.Query("method"),
		Status:   c.Query("status"),
		DateFrom: parseDateQuery(c, "date_from"),
		DateTo:   parseDateQuery(c, "date_to"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list payments", err)
		return
	}
	response.SuccessWithPage(c, payments, pageMeta(page, pageSize, total))
}

// PaymentReport reconciles one calendar day, or a from/to range
func (h *Handler) PaymentReport(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}

	var from, to time.Time
	if day := parseDateQuery(c, "date"); day != nil {
		from = *day
		to = day.AddDate(0, 0, 1)
	} else {
		f := parseDateQuery(c, "from")
		t := parseDateQuery(c, "to")
		if f == nil || t == nil {
			respondError(c, response.CodeBadRequest, "date or from/to is required", nil)
			return
		}
		from = *f
		to = t.AddDate(0, 0, 1)
	}

	report, err := h.PaymentService.Reconcile(shopID, from, to)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to build report", err)
		return
	}
	response.Success(c, report)
}

// DashboardOverview returns shop stats for a period
func (h *Handler) DashboardOverview(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}

	from := parseDateQuery(c, "from")
	to := parseDateQuery(c, "to")
	if from == nil || to == nil {
		overview, err := h.DashboardService.Today(shopID)
		if err != nil {
			respondError(c, response.CodeInternal, "failed to load overview", err)
			return
		}
		response.Success(c, overview)
		return
	}

	overview, err := h.DashboardService.Overview(shopID, *from, to.AddDate(0, 0, 1))
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load overview", err)
		return
	}
	response.Success(c, overview)
}
