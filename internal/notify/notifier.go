package notify

import (
	"github.com/mobipos/mobipos/internal/logger"
	"github.com/mobipos/mobipos/internal/models"
)

// Notifier delivers shop events to whoever watches the till.
// The log sink is the only backend for now; SMS or WhatsApp
// senders plug in behind the same interface.
type Notifier interface {
	SaleCompleted(sale *models.Sale) error
	LowStock(shopID uint, product *models.Product, remaining int64) error
	LoanInstallmentDue(loan *models.Loan, installment *models.LoanInstallment) error
}

// LogNotifier writes notifications to the structured log
type LogNotifier struct{}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// SaleCompleted logs a finished sale
func (n *LogNotifier) SaleCompleted(sale *models.Sale) error {
	if sale == nil {
		return nil
	}
	logger.Infow("notify_sale_completed",
		"shop_id", sale.ShopID,
		"sale_id", sale.ID,
		"invoice_no", sale.InvoiceNo,
		"total_amount", sale.TotalAmount.String(),
		"payment_method", sale.PaymentMethod,
	)
	return nil
}

// LowStock logs a product running low on sellable units
func (n *LogNotifier) LowStock(shopID uint, product *models.Product, remaining int64) error {
	if product == nil {
		return nil
	}
	logger.Warnw("notify_low_stock",
		"shop_id", shopID,
		"product_id", product.ID,
		"sku", product.SKU,
		"name", product.Name,
		"remaining", remaining,
	)
	return nil
}

// LoanInstallmentDue logs an installment past its due date
func (n *LogNotifier) LoanInstallmentDue(loan *models.Loan, installment *models.LoanInstallment) error {
	if loan == nil || installment == nil {
		return nil
	}
	fields := []interface{}{
		"shop_id", loan.ShopID,
		"loan_id", loan.ID,
		"installment_id", installment.ID,
		"seq_no", installment.SeqNo,
		"due_date", installment.DueDate,
		"due_amount", installment.DueAmount.String(),
		"paid_amount", installment.PaidAmount.String(),
	}
	if loan.Customer != nil {
		fields = append(fields, "customer_name", loan.Customer.Name, "customer_phone", loan.Customer.Phone)
	}
	logger.Warnw("notify_loan_installment_due", fields...)
	return nil
}
