package repository

import (
	"errors"
	"strings"

	"github.com/mobipos/mobipos/internal/models"

	"gorm.io/gorm"
)

// SupplierRepository is the supplier data access interface
type SupplierRepository interface {
	List(filter SupplierListFilter) ([]models.Supplier, int64, error)
	GetByID(shopID, id uint) (*models.Supplier, error)
	Create(supplier *models.Supplier) error
	Update(supplier *models.Supplier) error
	Delete(shopID, id uint) error
	WithTx(tx *gorm.DB) SupplierRepository
}

// GormSupplierRepository is the GORM implementation
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a supplier repository
func NewSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// WithTx binds the repository to a transaction
func (r *GormSupplierRepository) WithTx(tx *gorm.DB) SupplierRepository {
	if tx == nil {
		return r
	}
	return &GormSupplierRepository{db: tx}
}

// List fetches a supplier page
func (r *GormSupplierRepository) List(filter SupplierListFilter) ([]models.Supplier, int64, error) {
	query := r.db.Model(&models.Supplier{}).Where("shop_id = ?", filter.ShopID)
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var suppliers []models.Supplier
	if err := query.Order("name ASC, id ASC").Find(&suppliers).Error; err != nil {
		return nil, 0, err
	}
	return suppliers, total, nil
}

// GetByID fetches a shop's supplier by id
func (r *GormSupplierRepository) GetByID(shopID, id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.Where("shop_id = ?", shopID).First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

// Create inserts a supplier
func (r *GormSupplierRepository) Create(supplier *models.Supplier) error {
	return r.db.Create(supplier).Error
}

// Update saves a supplier
func (r *GormSupplierRepository) Update(supplier *models.Supplier) error {
	return r.db.Save(supplier).Error
}

// Delete soft-deletes a shop's supplier
func (r *GormSupplierRepository) Delete(shopID, id uint) error {
	return r.db.Where("shop_id = ?", shopID).Delete(&models.Supplier{}, id).Error
}
