package admin

import (
	"errors"

	"github.com/mobipos/mobipos/internal/http/response"
	"github.com/mobipos/mobipos/internal/repository"
	"github.com/mobipos/mobipos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AddUnitsRequest inserts stock units by hand, outside a purchase
type AddUnitsRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	IMEIs     []string        `json:"imeis"`
}

// UnitStatusRequest flips a unit between statuses
type UnitStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListInventory lists unit rows
func (h *Handler) ListInventory(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	page, pageSize := getPagination(c)

	units, total, err := h.InventoryService.List(repository.InventoryListFilter{
		Page:      page,
		PageSize:  pageSize,
		ShopID:    shopID,
		ProductID: parseUintQuery(c, "product_id"),
		Status:    c.Query("status"),
		IMEI:      c.Query("imei"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list inventory", err)
		return
	}
	response.SuccessWithPage(c, units, pageMeta(page, pageSize, total))
}

// AddInventoryUnits books units without a purchase receipt
func (h *Handler) AddInventoryUnits(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	var req AddUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "product_id and quantity are required", err)
		return
	}

	units, err := h.InventoryService.AddUnits(service.AddInventoryUnitsInput{
		ShopID:    shopID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitCost:  req.UnitCost,
		IMEIs:     req.IMEIs,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrInvalidQuantity):
			respondError(c, response.CodeBadRequest, "invalid quantity or imei list", nil)
		default:
			respondError(c, response.CodeInternal, "failed to add units", err)
		}
		return
	}
	response.Success(c, units)
}

// ChangeUnitStatus flips a unit between in_stock, damaged and returned
func (h *Handler) ChangeUnitStatus(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UnitStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "status is required", err)
		return
	}

	unit, err := h.InventoryService.ChangeUnitStatus(shopID, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInventoryNotFound):
			respondError(c, response.CodeNotFound, "inventory unit not found", nil)
		case errors.Is(err, service.ErrInvalidSaleStatus):
			respondError(c, response.CodeBadRequest, "invalid status change", nil)
		default:
			respondError(c, response.CodeInternal, "failed to change unit status", err)
		}
		return
	}
	response.Success(c, unit)
}

// GetStockCount reports the sellable count for one product
func (h *Handler) GetStockCount(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}
	count, err := h.InventoryService.StockCount(shopID, productID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to count stock", err)
		return
	}
	response.Success(c, gin.H{"product_id": productID, "in_stock": count})
}
