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

// PurchaseItemRequest is one product line on a stock receipt
type PurchaseItemRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	IMEIs     []string        `json:"imeis"`
}

// PurchaseRequest books a stock receipt
type PurchaseRequest struct {
	SupplierID  uint                  `json:"supplier_id" binding:"required"`
	ReferenceNo string                `json:"reference_no"`
	Notes       string                `json:"notes"`
	PurchasedAt *time.Time            `json:"purchased_at"`
	Items       []PurchaseItemRequest `json:"items" binding:"required"`
}

// ListPurchases lists stock receipts
func (h *Handler) ListPurchases(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	page, pageSize := getPagination(c)

	purchases, total, err := h.PurchaseService.List(repository.PurchaseListFilter{
		Page:       page,
		PageSize:   pageSize,
		ShopID:     shopID,
		SupplierID: parseUintQuery(c, "supplier_id"),
		Status:     c.Query("status"),
		DateFrom:   parseDateQuery(c, "date_from"),
		DateTo:     parseDateQuery(c, "date_to"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list purchases", err)
		return
	}
	response.SuccessWithPage(c, purchases, pageMeta(page, pageSize, total))
}

// GetPurchase returns a receipt with its items
func (h *Handler) GetPurchase(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	purchase, err := h.PurchaseService.Get(shopID, id)
	if err != nil {
		if errors.Is(err, service.ErrPurchaseNotFound) {
			respondError(c, response.CodeNotFound, "purchase not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load purchase", err)
		return
	}
	response.Success(c, purchase)
}

// CreatePurchase books a receipt and its inventory units
func (h *Handler) CreatePurchase(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "supplier_id and items are required", err)
		return
	}

	items := make([]service.CreatePurchaseItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CreatePurchaseItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
			IMEIs:     item.IMEIs,
		})
	}
	purchasedAt := time.Time{}
	if req.PurchasedAt != nil {
		purchasedAt = *req.PurchasedAt
	}

	purchase, err := h.PurchaseService.Create(service.CreatePurchaseInput{
		ShopID:      shopID,
		SupplierID:  req.SupplierID,
		ReferenceNo: req.ReferenceNo,
		Notes:       req.Notes,
		PurchasedAt: purchasedAt,
		Items:       items,
		ActorID:     uid,
		ClientIP:    c.ClientIP(),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSupplierNotFound):
			respondError(c, response.CodeNotFound, "supplier not found", nil)
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrInvalidQuantity):
			respondError(c, response.CodeBadRequest, "invalid quantity or imei list", nil)
		case errors.Is(err, service.ErrPurchaseNotFound):
			respondError(c, response.CodeBadRequest, "supplier and items are required", nil)
		default:
			respondError(c, response.CodeInternal, "failed to create purchase", err)
		}
		return
	}
	response.Success(c, purchase)
}

// CancelPurchase voids a receipt while all its units are unsold
func (h *Handler) CancelPurchase(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	purchase, err := h.PurchaseService.Cancel(shopID, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPurchaseNotFound):
			respondError(c, response.CodeNotFound, "purchase not found", nil)
		case errors.Is(err, service.ErrPurchaseCancelled):
			respondError(c, response.CodeBadRequest, "purchase is already cancelled", nil)
		case errors.Is(err, service.ErrPurchaseHasSoldUnits):
			respondError(c, response.CodeConflict, "purchase has sold units", nil)
		default:
			respondError(c, response.CodeInternal, "failed to cancel purchase", err)
		}
		return
	}
	response.Success(c, purchase)
}
