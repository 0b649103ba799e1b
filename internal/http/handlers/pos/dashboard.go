package pos

import (
	"time"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/http/response"
	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WorkerDashboard summarizes a worker's own activity for the day
type WorkerDashboard struct {
	Date       string        `json:"date"`
	SalesCount int64         `json:"sales_count"`
	UnitsSold  int           `json:"units_sold"`
	Revenue    models.Money  `json:"revenue"`
	Sales      []models.Sale `json:"sales"`
}

// Dashboard returns the shop overview for owners and a personal
// summary for workers.
func (h *Handler) Dashboard(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	shopID, ok := getShopID(c)
	if !ok {
		return
	}

	if getRole(c) != constants.RoleOwner {
		h.workerDashboard(c, uid, shopID)
		return
	}

	from := parseDateParam(c.Query("from"))
	to := parseDateParam(c.Query("to"))
	if from == nil || to == nil {
		overview, err := h.DashboardService.Today(shopID)
		if err != nil {
			respondError(c, response.CodeInternal, "failed to load dashboard", err)
			return
		}
		response.Success(c, overview)
		return
	}

	// to is inclusive as a calendar day
	end := to.AddDate(0, 0, 1)
	overview, err := h.DashboardService.Overview(shopID, *from, end)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load dashboard", err)
		return
	}
	response.Success(c, overview)
}

func (h *Handler) workerDashboard(c *gin.Context, uid, shopID uint) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	sales, total, err := h.SaleService.List(repository.SaleListFilter{
		Page:     1,
		PageSize: 100,
		ShopID:   shopID,
		SellerID: uid,
		DateFrom: &midnight,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load dashboard", err)
		return
	}

	revenue := decimal.Zero
	units := 0
	for _, sale := range sales {
		if sale.Status != constants.SaleStatusCompleted {
			continue
		}
		revenue = revenue.Add(sale.TotalAmount.Decimal)
		for _, item := range sale.Items {
			units += item.Quantity
		}
	}

	response.Success(c, WorkerDashboard{
		Date:       now.Format("2006-01-02"),
		SalesCount: total,
		UnitsSold:  units,
		Revenue:    models.NewMoneyFromDecimal(revenue),
		Sales:      sales,
	})
}
