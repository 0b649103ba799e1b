package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type checkoutFixture struct {
	db       *gorm.DB
	svc      *CheckoutService
	cartRepo repository.CartRepository
}

func setupCheckoutTest(t *testing.T) *checkoutFixture {
	t.Helper()
	db := newTestDB(t)
	cartRepo := repository.NewCartRepository(db)
	svc := NewCheckoutService(
		testConfig(),
		cartRepo,
		repository.NewProductRepository(db),
		repository.NewInventoryRepository(db),
		repository.NewSaleRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewAuditLogRepository(db),
		nil,
	)
	return &checkoutFixture{db: db, svc: svc, cartRepo: cartRepo}
}

func stageCart(t *testing.T, f *checkoutFixture, userID, shopID, productID uint, quantity int) {
	t.Helper()
	err := f.cartRepo.Upsert(&models.CartItem{
		UserID:    userID,
		ShopID:    shopID,
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		t.Fatalf("stage cart failed: %v", err)
	}
}

func TestCheckoutTotalsWithPercentageDiscount(t *testing.T) {
	f := setupCheckoutTest(t)
	product := seedProduct(t, f.db, 1, "SKU-1", 1000)
	seedUnits(t, f.db, 1, product.ID, 5)
	stageCart(t, f, 7, 1, product.ID, 2)

	sale, err := f.svc.Checkout(CheckoutInput{
		UserID:        7,
		ShopID:        1,
		PaymentMethod: constants.PaymentMethodCash,
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if !sale.Subtotal.Decimal.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("subtotal want 2000, got %s", sale.Subtotal)
	}
	if !sale.DiscountAmount.Decimal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("discount want 200, got %s", sale.DiscountAmount)
	}
	if !sale.TaxAmount.Decimal.Equal(decimal.NewFromInt(306)) {
		t.Fatalf("tax want 306, got %s", sale.TaxAmount)
	}
	if !sale.TotalAmount.Decimal.Equal(decimal.NewFromInt(2106)) {
		t.Fatalf("total want 2106, got %s", sale.TotalAmount)
	}

	wantInvoice := fmt.Sprintf("INV-%s-001", time.Now().Format("20060102"))
	if sale.InvoiceNo != wantInvoice {
		t.Fatalf("invoice want %s, got %s", wantInvoice, sale.InvoiceNo)
	}

	var payment models.Payment
	if err := f.db.Where("sale_id = ?", sale.ID).First(&payment).Error; err != nil {
		t.Fatalf("load payment failed: %v", err)
	}
	if payment.Status != constants.PaymentStatusCompleted {
		t.Fatalf("payment status want completed, got %s", payment.Status)
	}
	if !payment.Amount.Decimal.Equal(decimal.NewFromInt(2106)) {
		t.Fatalf("payment amount want 2106, got %s", payment.Amount)
	}

	var consumed int64
	f.db.Model(&models.InventoryItem{}).
		Where("sale_id = ? AND status = ?", sale.ID, constants.InventoryStatusOutOfStock).
		Count(&consumed)
	if consumed != 2 {
		t.Fatalf("consumed units want 2, got %d", consumed)
	}

	var staged int64
	f.db.Model(&models.CartItem{}).Where("user_id = ? AND shop_id = ?", 7, 1).Count(&staged)
	if staged != 0 {
		t.Fatalf("cart should be empty after checkout, got %d lines", staged)
	}

	var audits int64
	f.db.Model(&models.AuditLog{}).
		Where("action = ? AND entity_id = ?", constants.AuditActionSaleCreated, sale.ID).
		Count(&audits)
	if audits != 1 {
		t.Fatalf("sale_created audit rows want 1, got %d", audits)
	}
}

func TestCheckoutConsumesOldestUnitsFirst(t *testing.T) {
	f := setupCheckoutTest(t)
	product := seedProduct(t, f.db, 1, "SKU-FIFO", 500)
	units := seedUnits(t, f.db, 1, product.ID, 4)
	stageCart(t, f, 3, 1, product.ID, 2)

	sale, err := f.svc.Checkout(CheckoutInput{
		UserID:        3,
		ShopID:        1,
		PaymentMethod: constants.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	for _, oldest := range units[:2] {
		var unit models.InventoryItem
		if err := f.db.First(&unit, oldest.ID).Error; err != nil {
			t.Fatalf("load unit failed: %v", err)
		}
		if unit.Status != constants.InventoryStatusOutOfStock || unit.SaleID == nil || *unit.SaleID != sale.ID {
			t.Fatalf("oldest unit %d should be consumed by sale %d, got status=%s", oldest.ID, sale.ID, unit.Status)
		}
	}
	for _, newer := range units[2:] {
		var unit models.InventoryItem
		if err := f.db.First(&unit, newer.ID).Error; err != nil {
			t.Fatalf("load unit failed: %v", err)
		}
		if unit.Status != constants.InventoryStatusInStock {
			t.Fatalf("newer unit %d should stay in stock, got %s", newer.ID, unit.Status)
		}
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := setupCheckoutTest(t)
	_, err := f.svc.Checkout(CheckoutInput{
		UserID:        1,
		ShopID:        1,
		PaymentMethod: constants.PaymentMethodCash,
	})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("want ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutRejectsOversell(t *testing.T) {
	f := setupCheckoutTest(t)
	product := seedProduct(t, f.db, 1, "SKU-LOW", 800)
	seedUnits(t, f.db, 1, product.ID, 1)
	stageCart(t, f, 5, 1, product.ID, 3)

	_, err := f.svc.Checkout(CheckoutInput{
		UserID:        5,
		ShopID:        1,
		PaymentMethod: constants.PaymentMethodCash,
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}

	// nothing may survive the rolled-back transaction
	var sales int64
	f.db.Model(&models.Sale{}).Count(&sales)
	if sales != 0 {
		t.Fatalf("sale rows want 0 after rollback, got %d", sales)
	}
	var inStock int64
	f.db.Model(&models.InventoryItem{}).
		Where("status = ?", constants.InventoryStatusInStock).
		Count(&inStock)
	if inStock != 1 {
		t.Fatalf("unit should stay in stock after rollback, got %d", inStock)
	}
	var staged int64
	f.db.Model(&models.CartItem{}).Count(&staged)
	if staged != 1 {
		t.Fatalf("cart should survive a failed checkout, got %d lines", staged)
	}
}

func TestCheckoutInvoiceSequenceIncrementsWithinDay(t *testing.T) {
	f := setupCheckoutTest(t)
	product := seedProduct(t, f.db, 1, "SKU-SEQ", 300)
	seedUnits(t, f.db, 1, product.ID, 4)

	day := time.Now().Format("20060102")
	for i, want := range []string{"INV-" + day + "-001", "INV-" + day + "-002"} {
		stageCart(t, f, 2, 1, product.ID, 1)
		sale, err := f.svc.Checkout(CheckoutInput{
			UserID:        2,
			ShopID:        1,
			PaymentMethod: constants.PaymentMethodCard,
		})
		if err != nil {
			t.Fatalf("checkout %d failed: %v", i+1, err)
		}
		if sale.InvoiceNo != want {
			t.Fatalf("invoice %d want %s, got %s", i+1, want, sale.InvoiceNo)
		}
	}
}

func TestCheckoutDefaultsDiscountTypeToPercentage(t *testing.T) {
	f := setupCheckoutTest(t)
	product := seedProduct(t, f.db, 1, "SKU-PCT", 1000)
	seedUnits(t, f.db, 1, product.ID, 3)
	stageCart(t, f, 8, 1, product.ID, 2)

	sale, err := f.svc.Checkout(CheckoutInput{
		UserID:        8,
		ShopID:        1,
		PaymentMethod: constants.PaymentMethodCash,
		DiscountValue: decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if sale.DiscountType != constants.DiscountTypePercentage {
		t.Fatalf("discount type want percentage, got %q", sale.DiscountType)
	}
	if !sale.DiscountAmount.Decimal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("discount want 200, got %s", sale.DiscountAmount)
	}
	if !sale.TotalAmount.Decimal.Equal(decimal.NewFromInt(2106)) {
		t.Fatalf("total want 2106, got %s", sale.TotalAmount)
	}

	totals, err := computeTotals(mustDecimal(t, "2000"), "", mustDecimal(t, "10"), mustDecimal(t, "17"))
	if err != nil {
		t.Fatalf("compute totals failed: %v", err)
	}
	if !totals.DiscountAmount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("untyped discount want 200, got %s", totals.DiscountAmount)
	}
}

func TestCheckoutRejectsFixedDiscountOverSubtotal(t *testing.T) {
	f := setupCheckoutTest(t)
	product := seedProduct(t, f.db, 1, "SKU-DISC", 1000)
	seedUnits(t, f.db, 1, product.ID, 2)
	stageCart(t, f, 4, 1, product.ID, 1)

	_, err := f.svc.Checkout(CheckoutInput{
		UserID:        4,
		ShopID:        1,
		PaymentMethod: constants.PaymentMethodCash,
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: decimal.NewFromInt(1500),
	})
	if !errors.Is(err, ErrInvalidDiscount) {
		t.Fatalf("want ErrInvalidDiscount, got %v", err)
	}
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	f := setupCheckoutTest(t)
	_, err := f.svc.Checkout(CheckoutInput{
		UserID:        1,
		ShopID:        1,
		PaymentMethod: "barter",
	})
	if !errors.Is(err, ErrInvalidPayment) {
		t.Fatalf("want ErrInvalidPayment, got %v", err)
	}
}

func TestCheckoutRejectsInactiveProduct(t *testing.T) {
	f := setupCheckoutTest(t)
	product := seedProduct(t, f.db, 1, "SKU-OFF", 900)
	seedUnits(t, f.db, 1, product.ID, 2)
	stageCart(t, f, 6, 1, product.ID, 1)
	if err := f.db.Model(&models.Product{}).Where("id = ?", product.ID).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	_, err := f.svc.Checkout(CheckoutInput{
		UserID:        6,
		ShopID:        1,
		PaymentMethod: constants.PaymentMethodCash,
	})
	if !errors.Is(err, ErrProductInactive) {
		t.Fatalf("want ErrProductInactive, got %v", err)
	}
}

func TestComputeTotalsRoundsToWholeRupees(t *testing.T) {
	totals, err := computeTotals(
		mustDecimal(t, "999"),
		constants.DiscountTypePercentage,
		mustDecimal(t, "7.5"),
		mustDecimal(t, "17"),
	)
	if err != nil {
		t.Fatalf("compute totals failed: %v", err)
	}
	// 999 * 7.5% = 74.925 -> 75; 924 * 17% = 157.08 -> 157
	if !totals.DiscountAmount.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("discount want 75, got %s", totals.DiscountAmount)
	}
	if !totals.TaxAmount.Equal(decimal.NewFromInt(157)) {
		t.Fatalf("tax want 157, got %s", totals.TaxAmount)
	}
	if !totals.TotalAmount.Equal(decimal.NewFromInt(1081)) {
		t.Fatalf("total want 1081, got %s", totals.TotalAmount)
	}
}
