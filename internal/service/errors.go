package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto
// business response codes.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrInvalidPassword    = errors.New("incorrect password")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrNoShopForUser      = errors.New("no shop associated with user")
	ErrShopNotFound       = errors.New("shop not found")

	ErrProductNotFound   = errors.New("product not found")
	ErrProductInactive   = errors.New("product inactive")
	ErrDuplicateSKU      = errors.New("sku already exists")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrInventoryNotFound = errors.New("inventory item not found")

	ErrCartEmpty         = errors.New("cart is empty")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidDiscount   = errors.New("invalid discount")
	ErrInvalidPayment    = errors.New("invalid payment method")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCheckoutFailed    = errors.New("checkout failed")

	ErrSaleNotFound        = errors.New("sale not found")
	ErrSaleNotDeletable    = errors.New("sale cannot be deleted")
	ErrInvalidSaleStatus   = errors.New("invalid sale status transition")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrInvalidPaymentValue = errors.New("invalid payment amount")

	ErrPurchaseNotFound     = errors.New("purchase not found")
	ErrPurchaseCancelled    = errors.New("purchase already cancelled")
	ErrPurchaseHasSoldUnits = errors.New("purchase has sold units")

	ErrLoanNotFound        = errors.New("loan not found")
	ErrLoanClosed          = errors.New("loan is not active")
	ErrInstallmentNotFound = errors.New("installment not found")
	ErrInvalidInstallments = errors.New("invalid installment plan")

	ErrQueueUnavailable = errors.New("queue unavailable")
)
