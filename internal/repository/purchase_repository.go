package repository

import (
	"errors"

	"github.com/mobipos/mobipos/internal/models"

	"gorm.io/gorm"
)

// PurchaseRepository is the purchase data access interface
type PurchaseRepository interface {
	Create(purchase *models.Purchase, items []models.PurchaseItem) error
	List(filter PurchaseListFilter) ([]models.Purchase, int64, error)
	GetByID(shopID, id uint) (*models.Purchase, error)
	Update(purchase *models.Purchase) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) PurchaseRepository
}

// GormPurchaseRepository is the GORM implementation
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a purchase repository
func NewPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// WithTx binds the repository to a transaction
func (r *GormPurchaseRepository) WithTx(tx *gorm.DB) PurchaseRepository {
	if tx == nil {
		return r
	}
	return &GormPurchaseRepository{db: tx}
}

// Transaction runs fn inside a database transaction
func (r *GormPurchaseRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create inserts a purchase with its line items
func (r *GormPurchaseRepository) Create(purchase *models.Purchase, items []models.PurchaseItem) error {
	if err := r.db.Create(purchase).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].PurchaseID = purchase.ID
	}
	return r.db.Create(&items).Error
}

// List fetches a purchase page
func (r *GormPurchaseRepository) List(filter PurchaseListFilter) ([]models.Purchase, int64, error) {
	query := r.db.Model(&models.Purchase{}).
		Where("shop_id = ?", filter.ShopID).
		Preload("Supplier")
	if filter.SupplierID > 0 {
		query = query.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("purchased_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("purchased_at < ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var purchases []models.Purchase
	if err := query.Order("purchased_at DESC, id DESC").Find(&purchases).Error; err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

// GetByID fetches a shop's purchase with its items
func (r *GormPurchaseRepository) GetByID(shopID, id uint) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.db.Where("shop_id = ?", shopID).
		Preload("Supplier").
		Preload("Items").
		Preload("Items.Product").
		First(&purchase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// Update saves a purchase
func (r *GormPurchaseRepository) Update(purchase *models.Purchase) error {
	return r.db.Save(purchase).Error
}
