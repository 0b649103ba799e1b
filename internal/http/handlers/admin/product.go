package admin

import (
	"errors"

	"github.com/mobipos/mobipos/internal/http/response"
	"github.com/mobipos/mobipos/internal/repository"
	"github.com/mobipos/mobipos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest carries product create/update fields. Prices are
// pointers so an omitted field is left untouched on update.
type ProductRequest struct {
	SKU          string           `json:"sku"`
	Name         string           `json:"name"`
	Brand        string           `json:"brand"`
	Model        string           `json:"model"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	Active       *bool            `json:"active"`
}

// priceOrSkip maps an omitted price to the negative sentinel the
// service treats as "keep current value"
func priceOrSkip(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.NewFromInt(-1)
	}
	return *p
}

func priceOrZero(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return *p
}

func productErrorCode(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrDuplicateSKU):
		respondError(c, response.CodeConflict, "sku already exists", nil)
	case errors.Is(err, service.ErrInvalidQuantity):
		respondError(c, response.CodeBadRequest, "invalid price", nil)
	default:
		respondError(c, response.CodeInternal, "product operation failed", err)
	}
}

// ListProducts lists the catalog
func (h *Handler) ListProducts(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	page, pageSize := getPagination(c)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		ShopID:     shopID,
		Search:     c.Query("search"),
		Brand:      c.Query("brand"),
		OnlyActive: c.Query("active") == "true",
		WithStock:  true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list products", err)
		return
	}
	response.SuccessWithPage(c, products, pageMeta(page, pageSize, total))
}

// GetProduct returns one product with its live stock count
func (h *Handler) GetProduct(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.Get(shopID, id)
	if err != nil {
		productErrorCode(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct adds a catalog entry
func (h *Handler) CreateProduct(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid product payload", err)
		return
	}
	if req.SKU == "" || req.Name == "" {
		respondError(c, response.CodeBadRequest, "sku and name are required", nil)
		return
	}

	product, err := h.ProductService.Create(service.UpsertProductInput{
		ShopID:       shopID,
		SKU:          req.SKU,
		Name:         req.Name,
		Brand:        req.Brand,
		Model:        req.Model,
		SellingPrice: priceOrZero(req.SellingPrice),
		CostPrice:    priceOrZero(req.CostPrice),
		Active:       req.Active,
	})
	if err != nil {
		productErrorCode(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct rewrites a catalog entry
func (h *Handler) UpdateProduct(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid product payload", err)
		return
	}

	product, err := h.ProductService.Update(id, service.UpsertProductInput{
		ShopID:       shopID,
		SKU:          req.SKU,
		Name:         req.Name,
		Brand:        req.Brand,
		Model:        req.Model,
		SellingPrice: priceOrSkip(req.SellingPrice),
		CostPrice:    priceOrSkip(req.CostPrice),
		Active:       req.Active,
	})
	if err != nil {
		productErrorCode(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct retires a product
func (h *Handler) DeleteProduct(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(shopID, id); err != nil {
		productErrorCode(c, err)
		return
	}
	response.SuccessWithMsg(c, "product deleted", nil)
}
