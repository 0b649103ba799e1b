package repository

import (
	"errors"

	"github.com/mobipos/mobipos/internal/models"

	"gorm.io/gorm"
)

// ShopRepository is the shop data access interface
type ShopRepository interface {
	GetByID(id uint) (*models.Shop, error)
	ListByOwner(ownerID uint) ([]models.Shop, error)
	FirstByOwner(ownerID uint) (*models.Shop, error)
	Create(shop *models.Shop) error
	Update(shop *models.Shop) error
	WithTx(tx *gorm.DB) ShopRepository
}

// GormShopRepository is the GORM implementation
type GormShopRepository struct {
	db *gorm.DB
}

// NewShopRepository creates a shop repository
func NewShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// WithTx binds the repository to a transaction
func (r *GormShopRepository) WithTx(tx *gorm.DB) ShopRepository {
	if tx == nil {
		return r
	}
	return &GormShopRepository{db: tx}
}

// GetByID fetches a shop by id
func (r *GormShopRepository) GetByID(id uint) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

// ListByOwner fetches all shops owned by a user
func (r *GormShopRepository) ListByOwner(ownerID uint) ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.db.Where("owner_id = ?", ownerID).Order("id ASC").Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// FirstByOwner fetches the oldest shop owned by a user
func (r *GormShopRepository) FirstByOwner(ownerID uint) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.Where("owner_id = ?", ownerID).Order("id ASC").First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

// Create inserts a shop
func (r *GormShopRepository) Create(shop *models.Shop) error {
	return r.db.Create(shop).Error
}

// Update saves a shop
func (r *GormShopRepository) Update(shop *models.Shop) error {
	return r.db.Save(shop).Error
}
