package service

import (
	"errors"
	"time"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/logger"
	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// allowedSaleTransitions lists the legal status moves. Returning or
// cancelling a sale puts its units back in stock.
var allowedSaleTransitions = map[string]map[string]bool{
	constants.SaleStatusPending: {
		constants.SaleStatusCompleted: true,
		constants.SaleStatusCancelled: true,
	},
	constants.SaleStatusCompleted: {
		constants.SaleStatusReturned: true,
	},
}

// saleStatusRestoresStock reports whether entering a status hands the
// consumed units back
func saleStatusRestoresStock(status string) bool {
	return status == constants.SaleStatusCancelled || status == constants.SaleStatusReturned
}

// SaleService covers everything after checkout: listing, lookups,
// reversal and extra payment rows
type SaleService struct {
	saleRepo      repository.SaleRepository
	inventoryRepo repository.InventoryRepository
	paymentRepo   repository.PaymentRepository
	auditRepo     repository.AuditLogRepository
}

// NewSaleService creates a sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	inventoryRepo repository.InventoryRepository,
	paymentRepo repository.PaymentRepository,
	auditRepo repository.AuditLogRepository,
) *SaleService {
	return &SaleService{
		saleRepo:      saleRepo,
		inventoryRepo: inventoryRepo,
		paymentRepo:   paymentRepo,
		auditRepo:     auditRepo,
	}
}

// List fetches a sale page
func (s *SaleService) List(filter repository.SaleListFilter) ([]models.Sale, int64, error) {
	return s.saleRepo.List(filter)
}

// Get fetches a sale with its items and payments
func (s *SaleService) Get(shopID, id uint) (*models.Sale, error) {
	sale, err := s.saleRepo.GetByID(shopID, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

// GetByInvoiceNo fetches a sale by its invoice number
func (s *SaleService) GetByInvoiceNo(shopID uint, invoiceNo string) (*models.Sale, error) {
	sale, err := s.saleRepo.GetByInvoiceNo(shopID, invoiceNo)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

// ChangeStatus moves a sale along the allowed transitions, restoring
// stock when it enters cancelled or returned
func (s *SaleService) ChangeStatus(shopID, id uint, newStatus string, actorID uint, clientIP string) (*models.Sale, error) {
	sale, err := s.saleRepo.GetByID(shopID, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}
	if !allowedSaleTransitions[sale.Status][newStatus] {
		return nil, ErrInvalidSaleStatus
	}

	oldStatus := sale.Status
	now := time.Now()
	err = s.saleRepo.Transaction(func(tx *gorm.DB) error {
		saleRepo := s.saleRepo.WithTx(tx)
		auditRepo := s.auditRepo.WithTx(tx)

		sale.Status = newStatus
		sale.UpdatedAt = now
		if err := saleRepo.Update(sale); err != nil {
			return err
		}

		if saleStatusRestoresStock(newStatus) {
			restored, err := s.inventoryRepo.WithTx(tx).RestoreBySale(sale.ID)
			if err != nil {
				return err
			}
			logger.Infow("sale_units_restored",
				"sale_id", sale.ID,
				"invoice_no", sale.InvoiceNo,
				"restored", restored,
			)
			if _, err := s.paymentRepo.WithTx(tx).RefundBySale(sale.ID); err != nil {
				return err
			}
		}

		return auditRepo.Create(&models.AuditLog{
			ShopID:     shopID,
			UserID:     actorID,
			Action:     constants.AuditActionSaleStatus,
			EntityType: "sale",
			EntityID:   sale.ID,
			Detail: models.JSON{
				"invoice_no": sale.InvoiceNo,
				"from":       oldStatus,
				"to":         newStatus,
			},
			IP:        clientIP,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// Delete reverses a sale completely: units go back in stock, payments
// flip to refunded, and the sale row is soft-deleted so the invoice
// number stays burned
func (s *SaleService) Delete(shopID, id uint, actorID uint, clientIP string) error {
	sale, err := s.saleRepo.GetByID(shopID, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return ErrSaleNotFound
	}

	now := time.Now()
	return s.saleRepo.Transaction(func(tx *gorm.DB) error {
		if _, err := s.inventoryRepo.WithTx(tx).RestoreBySale(sale.ID); err != nil {
			return err
		}
		if _, err := s.paymentRepo.WithTx(tx).RefundBySale(sale.ID); err != nil {
			return err
		}
		if err := s.saleRepo.WithTx(tx).Delete(shopID, sale.ID); err != nil {
			return err
		}
		return s.auditRepo.WithTx(tx).Create(&models.AuditLog{
			ShopID:     shopID,
			UserID:     actorID,
			Action:     constants.AuditActionSaleDeleted,
			EntityType: "sale",
			EntityID:   sale.ID,
			Detail: models.JSON{
				"invoice_no":   sale.InvoiceNo,
				"total_amount": sale.TotalAmount,
				"status":       sale.Status,
			},
			IP:        clientIP,
			CreatedAt: now,
		})
	})
}

// RecordPayment adds a payment row to an existing sale
func (s *SaleService) RecordPayment(shopID, saleID uint, method string, amount decimal.Decimal, reference string, actorID uint, clientIP string) (*models.Payment, error) {
	if !constants.ValidPaymentMethods[method] {
		return nil, ErrInvalidPayment
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidPaymentValue
	}
	sale, err := s.saleRepo.GetByID(shopID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}

	now := time.Now()
	payment := &models.Payment{
		ShopID:     shopID,
		SaleID:     saleID,
		Method:     method,
		Amount:     models.NewMoneyFromDecimal(amount),
		Status:     constants.PaymentStatusCompleted,
		Reference:  reference,
		ReceivedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = s.saleRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.WithTx(tx).Create(payment); err != nil {
			return err
		}
		return s.auditRepo.WithTx(tx).Create(&models.AuditLog{
			ShopID:     shopID,
			UserID:     actorID,
			Action:     constants.AuditActionPaymentRecorded,
			EntityType: "payment",
			EntityID:   payment.ID,
			Detail: models.JSON{
				"sale_id":    saleID,
				"invoice_no": sale.InvoiceNo,
				"method":     method,
				"amount":     payment.Amount,
			},
			IP:        clientIP,
			CreatedAt: now,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return payment, nil
}
