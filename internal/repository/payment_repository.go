package repository

import (
	"errors"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MethodTotal is one payment-method bucket in a reconciliation report
type MethodTotal struct {
	Method string
	Count  int64
	Total  decimal.Decimal
}

// PaymentRepository is the payment data access interface
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(shopID, id uint) (*models.Payment, error)
	ListBySale(saleID uint) ([]models.Payment, error)
	List(filter PaymentListFilter) ([]models.Payment, int64, error)
	Update(payment *models.Payment) error
	RefundBySale(saleID uint) (int64, error)
	SumByMethod(filter PaymentListFilter) ([]MethodTotal, error)
	WithTx(tx *gorm.DB) PaymentRepository
}

// GormPaymentRepository is the GORM implementation
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a payment repository
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx binds the repository to a transaction
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) PaymentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRepository{db: tx}
}

// Create inserts a payment
func (r *GormPaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// GetByID fetches a shop's payment by id
func (r *GormPaymentRepository) GetByID(shopID, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Where("shop_id = ?", shopID).First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// ListBySale fetches all payments of a sale
func (r *GormPaymentRepository) ListBySale(saleID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Where("sale_id = ?", saleID).Order("id ASC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *GormPaymentRepository) buildListQuery(filter PaymentListFilter) *gorm.DB {
	query := r.db.Model(&models.Payment{}).Where("shop_id = ?", filter.ShopID)
	if filter.SaleID > 0 {
		query = query.Where("sale_id = ?", filter.SaleID)
	}
	if filter.Method != "" {
		query = query.Where("method = ?", filter.Method)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("received_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("received_at < ?", *filter.DateTo)
	}
	return query
}

// List fetches a payment page
func (r *GormPaymentRepository) List(filter PaymentListFilter) ([]models.Payment, int64, error) {
	query := r.buildListQuery(filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var payments []models.Payment
	if err := query.Order("received_at DESC, id DESC").Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// Update saves a payment
func (r *GormPaymentRepository) Update(payment *models.Payment) error {
	return r.db.Save(payment).Error
}

// RefundBySale flips a sale's completed payments to refunded
func (r *GormPaymentRepository) RefundBySale(saleID uint) (int64, error) {
	if saleID == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Payment{}).
		Where("sale_id = ? AND status = ?", saleID, constants.PaymentStatusCompleted).
		Update("status", constants.PaymentStatusRefunded)
	return result.RowsAffected, result.Error
}

// SumByMethod groups completed payments into method totals
func (r *GormPaymentRepository) SumByMethod(filter PaymentListFilter) ([]MethodTotal, error) {
	type sumRow struct {
		Method string
		Count  int64
		Total  string
	}
	var rows []sumRow
	if err := r.buildListQuery(filter).
		Select("method, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Group("method").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make([]MethodTotal, 0, len(rows))
	for _, row := range rows {
		total, err := decimal.NewFromString(row.Total)
		if err != nil {
			return nil, err
		}
		totals = append(totals, MethodTotal{
			Method: row.Method,
			Count:  row.Count,
			Total:  total,
		})
	}
	return totals, nil
}
