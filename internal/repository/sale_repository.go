package repository

import (
	"errors"
	"strings"

	"github.com/mobipos/mobipos/internal/models"

	"gorm.io/gorm"
)

// SaleRepository is the sale data access interface
type SaleRepository interface {
	Create(sale *models.Sale, items []models.SaleItem) error
	GetByID(shopID, id uint) (*models.Sale, error)
	GetByInvoiceNo(shopID uint, invoiceNo string) (*models.Sale, error)
	List(filter SaleListFilter) ([]models.Sale, int64, error)
	Update(sale *models.Sale) error
	Delete(shopID, id uint) error
	AllocateInvoiceSeq(shopID uint, day string) (int, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) SaleRepository
}

// GormSaleRepository is the GORM implementation
type GormSaleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a sale repository
func NewSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// WithTx binds the repository to a transaction
func (r *GormSaleRepository) WithTx(tx *gorm.DB) SaleRepository {
	if tx == nil {
		return r
	}
	return &GormSaleRepository{db: tx}
}

// Transaction runs fn inside a database transaction
func (r *GormSaleRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create inserts a sale with its line items
func (r *GormSaleRepository) Create(sale *models.Sale, items []models.SaleItem) error {
	if err := r.db.Create(sale).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].SaleID = sale.ID
	}
	return r.db.Create(&items).Error
}

// GetByID fetches a shop's sale with items, payments and customer
func (r *GormSaleRepository) GetByID(shopID, id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.Where("shop_id = ?", shopID).
		Preload("Items").
		Preload("Payments").
		Preload("Customer").
		First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// GetByInvoiceNo fetches a shop's sale by invoice number
func (r *GormSaleRepository) GetByInvoiceNo(shopID uint, invoiceNo string) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.Where("shop_id = ? AND invoice_no = ?", shopID, invoiceNo).
		Preload("Items").
		Preload("Payments").
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// List fetches a sale page
func (r *GormSaleRepository) List(filter SaleListFilter) ([]models.Sale, int64, error) {
	query := r.db.Model(&models.Sale{}).Where("shop_id = ?", filter.ShopID)
	if filter.SellerID > 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filter.PaymentMethod)
	}
	if invoiceNo := strings.TrimSpace(filter.InvoiceNo); invoiceNo != "" {
		query = query.Where("invoice_no LIKE ?", "%"+invoiceNo+"%")
	}
	if filter.DateFrom != nil {
		query = query.Where("sale_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("sale_date < ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var sales []models.Sale
	if err := query.Preload("Items").Preload("Customer").
		Order("sale_date DESC, id DESC").Find(&sales).Error; err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

// Update saves a sale
func (r *GormSaleRepository) Update(sale *models.Sale) error {
	return r.db.Save(sale).Error
}

// Delete soft-deletes a shop's sale
func (r *GormSaleRepository) Delete(shopID, id uint) error {
	return r.db.Where("shop_id = ?", shopID).Delete(&models.Sale{}, id).Error
}

// AllocateInvoiceSeq hands out the next invoice sequence number for a
// shop and day. Runs a guarded increment first so the allocation
// stays atomic; call inside the checkout transaction.
func (r *GormSaleRepository) AllocateInvoiceSeq(shopID uint, day string) (int, error) {
	if shopID == 0 || day == "" {
		return 0, errors.New("invalid invoice sequence params")
	}

	result := r.db.Model(&models.InvoiceSequence{}).
		Where("shop_id = ? AND day = ?", shopID, day).
		Update("next_seq", gorm.Expr("next_seq + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		seq := models.InvoiceSequence{ShopID: shopID, Day: day, NextSeq: 2}
		if err := r.db.Create(&seq).Error; err != nil {
			// Lost the insert race, retry the increment once.
			retry := r.db.Model(&models.InvoiceSequence{}).
				Where("shop_id = ? AND day = ?", shopID, day).
				Update("next_seq", gorm.Expr("next_seq + 1"))
			if retry.Error != nil {
				return 0, retry.Error
			}
			if retry.RowsAffected == 0 {
				return 0, err
			}
			return r.readAllocatedSeq(shopID, day)
		}
		return 1, nil
	}

	return r.readAllocatedSeq(shopID, day)
}

func (r *GormSaleRepository) readAllocatedSeq(shopID uint, day string) (int, error) {
	var seq models.InvoiceSequence
	if err := r.db.Where("shop_id = ? AND day = ?", shopID, day).First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.NextSeq - 1, nil
}
