package pos

import (
	"errors"
	"strconv"

	"github.com/mobipos/mobipos/internal/http/response"
	"github.com/mobipos/mobipos/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest adds or sets a cart line
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
	// Replace sets the line to Quantity instead of accumulating
	Replace bool `json:"replace"`
}

// GetCart returns the caller's staged cart
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	shopID, ok := getShopID(c)
	if !ok {
		return
	}

	cart, err := h.CartService.Get(uid, shopID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load cart", err)
		return
	}
	response.Success(c, cart)
}

// UpsertCartItem adds units onto a cart line
func (h *Handler) UpsertCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "product_id and quantity are required", err)
		return
	}

	var err error
	if req.Replace {
		err = h.CartService.SetItemQuantity(uid, shopID, req.ProductID, req.Quantity)
	} else {
		err = h.CartService.AddItem(service.AddCartItemInput{
			UserID:    uid,
			ShopID:    shopID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		})
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			respondError(c, response.CodeBadRequest, "invalid quantity", nil)
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrProductInactive):
			respondError(c, response.CodeBadRequest, "product is not for sale", nil)
		case errors.Is(err, service.ErrInsufficientStock):
			respondError(c, response.CodeConflict, "not enough units in stock", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update cart", err)
		}
		return
	}

	cart, err := h.CartService.Get(uid, shopID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load cart", err)
		return
	}
	response.Success(c, cart)
}

// DeleteCartItem drops a cart line
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	rawID := c.Param("product_id")
	productID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	if err := h.CartService.RemoveItem(uid, shopID, uint(productID)); err != nil {
		respondError(c, response.CodeInternal, "failed to update cart", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ClearCart empties the caller's cart
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid, shopID); err != nil {
		respondError(c, response.CodeInternal, "failed to clear cart", err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
