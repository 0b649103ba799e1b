package service

import (
	"time"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"

	"github.com/shopspring/decimal"
)

// reconcileTolerance absorbs rounding drift between a sale total and
// the payments recorded against it
var reconcileTolerance = decimal.NewFromFloat(0.01)

// ReconciliationReport compares recorded payments against sale totals
// for a period
type ReconciliationReport struct {
	From          time.Time                `json:"from"`
	To            time.Time                `json:"to"`
	MethodTotals  []MethodTotalEntry       `json:"method_totals"`
	GrandTotal    models.Money             `json:"grand_total"`
	SalesChecked  int                      `json:"sales_checked"`
	Mismatches    []ReconciliationMismatch `json:"mismatches"`
}

// MethodTotalEntry is one payment-method bucket
type MethodTotalEntry struct {
	Method string       `json:"method"`
	Count  int64        `json:"count"`
	Total  models.Money `json:"total"`
}

// ReconciliationMismatch flags a sale whose payments do not cover its
// total within tolerance
type ReconciliationMismatch struct {
	SaleID      uint         `json:"sale_id"`
	InvoiceNo   string       `json:"invoice_no"`
	TotalAmount models.Money `json:"total_amount"`
	PaidAmount  models.Money `json:"paid_amount"`
	Difference  models.Money `json:"difference"`
}

// PaymentService answers payment queries and builds reconciliation
// reports
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	saleRepo    repository.SaleRepository
}

// NewPaymentService creates a payment service
func NewPaymentService(paymentRepo repository.PaymentRepository, saleRepo repository.SaleRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		saleRepo:    saleRepo,
	}
}

// List fetches a payment page
func (s *PaymentService) List(filter repository.PaymentListFilter) ([]models.Payment, int64, error) {
	return s.paymentRepo.List(filter)
}

// Reconcile builds the report for a shop and period: per-method
// totals of completed payments, plus any sale whose completed
// payments drift from its total by more than a paisa.
func (s *PaymentService) Reconcile(shopID uint, from, to time.Time) (*ReconciliationReport, error) {
	report := &ReconciliationReport{
		From:       from,
		To:         to,
		Mismatches: []ReconciliationMismatch{},
	}

	methodTotals, err := s.paymentRepo.SumByMethod(repository.PaymentListFilter{
		ShopID:   shopID,
		Status:   constants.PaymentStatusCompleted,
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		return nil, err
	}

	grand := decimal.Zero
	report.MethodTotals = make([]MethodTotalEntry, 0, len(methodTotals))
	for _, bucket := range methodTotals {
		grand = grand.Add(bucket.Total)
		report.MethodTotals = append(report.MethodTotals, MethodTotalEntry{
			Method: bucket.Method,
			Count:  bucket.Count,
			Total:  models.NewMoneyFromDecimal(bucket.Total),
		})
	}
	report.GrandTotal = models.NewMoneyFromDecimal(grand)

	sales, _, err := s.saleRepo.List(repository.SaleListFilter{
		ShopID:   shopID,
		Status:   constants.SaleStatusCompleted,
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		return nil, err
	}

	for _, sale := range sales {
		payments, err := s.paymentRepo.ListBySale(sale.ID)
		if err != nil {
			return nil, err
		}
		paid := decimal.Zero
		for _, payment := range payments {
			if payment.Status != constants.PaymentStatusCompleted {
				continue
			}
			paid = paid.Add(payment.Amount.Decimal)
		}
		report.SalesChecked++

		diff := sale.TotalAmount.Decimal.Sub(paid)
		if diff.Abs().GreaterThan(reconcileTolerance) {
			report.Mismatches = append(report.Mismatches, ReconciliationMismatch{
				SaleID:      sale.ID,
				InvoiceNo:   sale.InvoiceNo,
				TotalAmount: sale.TotalAmount,
				PaidAmount:  models.NewMoneyFromDecimal(paid),
				Difference:  models.NewMoneyFromDecimal(diff),
			})
		}
	}

	return report, nil
}
