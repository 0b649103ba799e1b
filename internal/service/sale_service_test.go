package service

import (
	"errors"
	"testing"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type saleFixture struct {
	db       *gorm.DB
	checkout *CheckoutService
	svc      *SaleService
	cartRepo repository.CartRepository
}

func setupSaleTest(t *testing.T) *saleFixture {
	t.Helper()
	db := newTestDB(t)
	cartRepo := repository.NewCartRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	checkout := NewCheckoutService(
		testConfig(),
		cartRepo,
		repository.NewProductRepository(db),
		inventoryRepo,
		saleRepo,
		paymentRepo,
		repository.NewCustomerRepository(db),
		auditRepo,
		nil,
	)
	return &saleFixture{
		db:       db,
		checkout: checkout,
		svc:      NewSaleService(saleRepo, inventoryRepo, paymentRepo, auditRepo),
		cartRepo: cartRepo,
	}
}

func (f *saleFixture) makeSale(t *testing.T, quantity int) *models.Sale {
	t.Helper()
	product := seedProduct(t, f.db, 1, "SKU-SALE", 1000)
	seedUnits(t, f.db, 1, product.ID, quantity+2)
	err := f.cartRepo.Upsert(&models.CartItem{
		UserID: 9, ShopID: 1, ProductID: product.ID, Quantity: quantity,
	})
	if err != nil {
		t.Fatalf("stage cart failed: %v", err)
	}
	sale, err := f.checkout.Checkout(CheckoutInput{
		UserID:        9,
		ShopID:        1,
		PaymentMethod: constants.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	return sale
}

func TestChangeSaleStatusReturnRestoresStockAndRefunds(t *testing.T) {
	f := setupSaleTest(t)
	sale := f.makeSale(t, 2)

	updated, err := f.svc.ChangeStatus(1, sale.ID, constants.SaleStatusReturned, 9, "127.0.0.1")
	if err != nil {
		t.Fatalf("change status failed: %v", err)
	}
	if updated.Status != constants.SaleStatusReturned {
		t.Fatalf("status want returned, got %s", updated.Status)
	}

	var consumed int64
	f.db.Model(&models.InventoryItem{}).
		Where("sale_id = ? AND status = ?", sale.ID, constants.InventoryStatusOutOfStock).
		Count(&consumed)
	if consumed != 0 {
		t.Fatalf("consumed units want 0 after return, got %d", consumed)
	}
	var inStock int64
	f.db.Model(&models.InventoryItem{}).
		Where("status = ?", constants.InventoryStatusInStock).
		Count(&inStock)
	if inStock != 4 {
		t.Fatalf("in-stock units want 4 after return, got %d", inStock)
	}

	var payments []models.Payment
	if err := f.db.Where("sale_id = ?", sale.ID).Find(&payments).Error; err != nil {
		t.Fatalf("load payments failed: %v", err)
	}
	for _, payment := range payments {
		if payment.Status != constants.PaymentStatusRefunded {
			t.Fatalf("payment %d want refunded, got %s", payment.ID, payment.Status)
		}
	}
}

func TestChangeSaleStatusRejectsIllegalTransition(t *testing.T) {
	f := setupSaleTest(t)
	sale := f.makeSale(t, 1)

	_, err := f.svc.ChangeStatus(1, sale.ID, constants.SaleStatusPending, 9, "")
	if !errors.Is(err, ErrInvalidSaleStatus) {
		t.Fatalf("want ErrInvalidSaleStatus, got %v", err)
	}
	_, err = f.svc.ChangeStatus(1, sale.ID, constants.SaleStatusCancelled, 9, "")
	if !errors.Is(err, ErrInvalidSaleStatus) {
		t.Fatalf("completed->cancelled want ErrInvalidSaleStatus, got %v", err)
	}
}

func TestDeleteSaleReversesEverything(t *testing.T) {
	f := setupSaleTest(t)
	sale := f.makeSale(t, 2)

	if err := f.svc.Delete(1, sale.ID, 9, "127.0.0.1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := f.svc.Get(1, sale.ID); !errors.Is(err, ErrSaleNotFound) {
		t.Fatalf("deleted sale should be gone, got %v", err)
	}

	var inStock int64
	f.db.Model(&models.InventoryItem{}).
		Where("status = ?", constants.InventoryStatusInStock).
		Count(&inStock)
	if inStock != 4 {
		t.Fatalf("all units should be back in stock, got %d", inStock)
	}

	var refunded int64
	f.db.Model(&models.Payment{}).
		Where("sale_id = ? AND status = ?", sale.ID, constants.PaymentStatusRefunded).
		Count(&refunded)
	if refunded == 0 {
		t.Fatalf("payments should be refunded on delete")
	}

	// invoice number stays burned: the soft-deleted row keeps it
	var gone models.Sale
	err := f.db.Unscoped().Where("invoice_no = ?", sale.InvoiceNo).First(&gone).Error
	if err != nil {
		t.Fatalf("soft-deleted sale row should remain: %v", err)
	}
}

func TestRecordPaymentOnSale(t *testing.T) {
	f := setupSaleTest(t)
	sale := f.makeSale(t, 1)

	payment, err := f.svc.RecordPayment(1, sale.ID, constants.PaymentMethodEasypaisa,
		decimal.NewFromInt(500), "EP-123", 9, "127.0.0.1")
	if err != nil {
		t.Fatalf("record payment failed: %v", err)
	}
	if payment.Reference != "EP-123" {
		t.Fatalf("reference want EP-123, got %s", payment.Reference)
	}

	_, err = f.svc.RecordPayment(1, sale.ID, constants.PaymentMethodCash, decimal.Zero, "", 9, "")
	if !errors.Is(err, ErrInvalidPaymentValue) {
		t.Fatalf("zero amount want ErrInvalidPaymentValue, got %v", err)
	}
	_, err = f.svc.RecordPayment(1, 999, constants.PaymentMethodCash, decimal.NewFromInt(10), "", 9, "")
	if !errors.Is(err, ErrSaleNotFound) {
		t.Fatalf("missing sale want ErrSaleNotFound, got %v", err)
	}
}
