package pos

import (
	"errors"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/http/response"
	"github.com/mobipos/mobipos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CheckoutRequest finalizes the staged cart into a sale. An omitted
// discount_type means discount_amount is a percentage.
type CheckoutRequest struct {
	PaymentMethod  string           `json:"payment_method"`
	DiscountType   string           `json:"discount_type"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	TaxPercentage  *decimal.Decimal `json:"tax_percentage"`
	CustomerID     *uint            `json:"customer_id"`
	Notes          string           `json:"notes"`
}

var checkoutErrorRules = []struct {
	target error
	code   int
	msg    string
}{
	{service.ErrCartEmpty, response.CodeBadRequest, "cart is empty"},
	{service.ErrInvalidPayment, response.CodeBadRequest, "unsupported payment method"},
	{service.ErrInvalidDiscount, response.CodeBadRequest, "invalid discount"},
	{service.ErrCustomerNotFound, response.CodeNotFound, "customer not found"},
	{service.ErrProductNotFound, response.CodeNotFound, "product not found"},
	{service.ErrProductInactive, response.CodeBadRequest, "product is not for sale"},
	{service.ErrInsufficientStock, response.CodeConflict, "not enough units in stock"},
}

// Checkout cashes out the cart in one transaction and returns the
// created sale
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid checkout payload", err)
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = constants.PaymentMethodCash
	}

	sale, err := h.CheckoutService.Checkout(service.CheckoutInput{
		UserID:        uid,
		ShopID:        shopID,
		PaymentMethod: req.PaymentMethod,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountAmount,
		TaxPercentage: req.TaxPercentage,
		CustomerID:    req.CustomerID,
		Notes:         req.Notes,
		ClientIP:      c.ClientIP(),
	})
	if err != nil {
		for _, rule := range checkoutErrorRules {
			if errors.Is(err, rule.target) {
				respondError(c, rule.code, rule.msg, nil)
				return
			}
		}
		respondError(c, response.CodeInternal, "checkout failed", err)
		return
	}

	response.Success(c, sale)
}
