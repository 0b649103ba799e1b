package admin

import (
	"errors"

	"github.com/mobipos/mobipos/internal/http/response"
	"github.com/mobipos/mobipos/internal/repository"
	"github.com/mobipos/mobipos/internal/service"

	"github.com/gin-gonic/gin"
)

// SupplierRequest carries supplier create/update fields
type SupplierRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// ListSuppliers lists suppliers
func (h *Handler) ListSuppliers(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	page, pageSize := getPagination(c)

	suppliers, total, err := h.SupplierService.List(repository.SupplierListFilter{
		Page:     page,
		PageSize: pageSize,
		ShopID:   shopID,
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list suppliers", err)
		return
	}
	response.SuccessWithPage(c, suppliers, pageMeta(page, pageSize, total))
}

// GetSupplier returns one supplier
func (h *Handler) GetSupplier(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	supplier, err := h.SupplierService.Get(shopID, id)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			respondError(c, response.CodeNotFound, "supplier not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load supplier", err)
		return
	}
	response.Success(c, supplier)
}

// CreateSupplier adds a supplier
func (h *Handler) CreateSupplier(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		respondError(c, response.CodeBadRequest, "name is required", err)
		return
	}

	supplier, err := h.SupplierService.Create(service.UpsertSupplierInput{
		ShopID:  shopID,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to create supplier", err)
		return
	}
	response.Success(c, supplier)
}

// UpdateSupplier rewrites a supplier
func (h *Handler) UpdateSupplier(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid supplier payload", err)
		return
	}

	supplier, err := h.SupplierService.Update(id, service.UpsertSupplierInput{
		ShopID:  shopID,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			respondError(c, response.CodeNotFound, "supplier not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to update supplier", err)
		return
	}
	response.Success(c, supplier)
}

// DeleteSupplier removes a supplier
func (h *Handler) DeleteSupplier(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.SupplierService.Delete(shopID, id); err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			respondError(c, response.CodeNotFound, "supplier not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete supplier", err)
		return
	}
	response.SuccessWithMsg(c, "supplier deleted", nil)
}
