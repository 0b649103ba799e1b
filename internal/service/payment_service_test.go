package service

import (
	"testing"
	"time"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupPaymentTest(t *testing.T) (*gorm.DB, *PaymentService) {
	t.Helper()
	db := newTestDB(t)
	svc := NewPaymentService(
		repository.NewPaymentRepository(db),
		repository.NewSaleRepository(db),
	)
	return db, svc
}

func seedSaleWithPayment(t *testing.T, db *gorm.DB, invoiceNo string, total, paid int64, method string) *models.Sale {
	t.Helper()
	now := time.Now()
	sale := &models.Sale{
		InvoiceNo:     invoiceNo,
		ShopID:        1,
		SellerID:      1,
		Subtotal:      models.NewMoneyFromInt(total),
		TotalAmount:   models.NewMoneyFromInt(total),
		PaymentMethod: method,
		Status:        constants.SaleStatusCompleted,
		SaleDate:      now,
	}
	if err := db.Create(sale).Error; err != nil {
		t.Fatalf("seed sale failed: %v", err)
	}
	if paid > 0 {
		payment := &models.Payment{
			ShopID:     1,
			SaleID:     sale.ID,
			Method:     method,
			Amount:     models.NewMoneyFromInt(paid),
			Status:     constants.PaymentStatusCompleted,
			ReceivedAt: now,
		}
		if err := db.Create(payment).Error; err != nil {
			t.Fatalf("seed payment failed: %v", err)
		}
	}
	return sale
}

func TestReconcileGroupsByMethodAndFlagsMismatches(t *testing.T) {
	db, svc := setupPaymentTest(t)
	seedSaleWithPayment(t, db, "INV-1", 2106, 2106, constants.PaymentMethodCash)
	seedSaleWithPayment(t, db, "INV-2", 1500, 1500, constants.PaymentMethodCard)
	short := seedSaleWithPayment(t, db, "INV-3", 3000, 2500, constants.PaymentMethodCash)

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	report, err := svc.Reconcile(1, from, to)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if report.SalesChecked != 3 {
		t.Fatalf("sales checked want 3, got %d", report.SalesChecked)
	}
	if !report.GrandTotal.Decimal.Equal(decimal.NewFromInt(6106)) {
		t.Fatalf("grand total want 6106, got %s", report.GrandTotal)
	}

	totals := map[string]decimal.Decimal{}
	for _, bucket := range report.MethodTotals {
		totals[bucket.Method] = bucket.Total.Decimal
	}
	if !totals[constants.PaymentMethodCash].Equal(decimal.NewFromInt(4606)) {
		t.Fatalf("cash total want 4606, got %s", totals[constants.PaymentMethodCash])
	}
	if !totals[constants.PaymentMethodCard].Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("card total want 1500, got %s", totals[constants.PaymentMethodCard])
	}

	if len(report.Mismatches) != 1 {
		t.Fatalf("mismatches want 1, got %d", len(report.Mismatches))
	}
	mismatch := report.Mismatches[0]
	if mismatch.SaleID != short.ID {
		t.Fatalf("mismatch sale want %d, got %d", short.ID, mismatch.SaleID)
	}
	if !mismatch.Difference.Decimal.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("difference want 500, got %s", mismatch.Difference)
	}
}

func TestReconcileIgnoresRefundedPayments(t *testing.T) {
	db, svc := setupPaymentTest(t)
	sale := seedSaleWithPayment(t, db, "INV-R", 1000, 1000, constants.PaymentMethodCash)
	err := db.Model(&models.Payment{}).
		Where("sale_id = ?", sale.ID).
		Update("status", constants.PaymentStatusRefunded).Error
	if err != nil {
		t.Fatalf("refund payment failed: %v", err)
	}

	report, err := svc.Reconcile(1, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if !report.GrandTotal.Decimal.IsZero() {
		t.Fatalf("grand total want 0, got %s", report.GrandTotal)
	}
	// the completed sale now has zero covering payments
	if len(report.Mismatches) != 1 {
		t.Fatalf("mismatches want 1, got %d", len(report.Mismatches))
	}
}

func TestReconcileToleratesPaisaDrift(t *testing.T) {
	db, svc := setupPaymentTest(t)
	sale := seedSaleWithPayment(t, db, "INV-T", 1000, 0, constants.PaymentMethodCash)
	payment := &models.Payment{
		ShopID:     1,
		SaleID:     sale.ID,
		Method:     constants.PaymentMethodCash,
		Amount:     models.NewMoneyFromDecimal(mustDecimal(t, "999.99")),
		Status:     constants.PaymentStatusCompleted,
		ReceivedAt: time.Now(),
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("seed payment failed: %v", err)
	}

	report, err := svc.Reconcile(1, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(report.Mismatches) != 0 {
		t.Fatalf("one paisa drift should pass, got %d mismatches", len(report.Mismatches))
	}
}
