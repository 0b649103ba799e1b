package repository

import (
	"errors"

	"github.com/mobipos/mobipos/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart data access interface. Carts are scoped
// per seller per shop.
type CartRepository interface {
	ListBySeller(userID, shopID uint) ([]models.CartItem, error)
	GetBySellerAndProduct(userID, shopID, productID uint) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	DeleteBySellerAndProduct(userID, shopID, productID uint) error
	ClearBySeller(userID, shopID uint) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository is the GORM implementation
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds the repository to a transaction
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListBySeller fetches a seller's cart lines
func (r *GormCartRepository) ListBySeller(userID, shopID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").
		Where("user_id = ? AND shop_id = ?", userID, shopID).
		Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetBySellerAndProduct fetches a single cart line
func (r *GormCartRepository) GetBySellerAndProduct(userID, shopID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("user_id = ? AND shop_id = ? AND product_id = ?",
		userID, shopID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Upsert inserts or updates a cart line
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	var existing models.CartItem
	err := r.db.Where("user_id = ? AND shop_id = ? AND product_id = ?",
		item.UserID, item.ShopID, item.ProductID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"quantity":   item.Quantity,
		"updated_at": item.UpdatedAt,
	}
	return r.db.Model(&existing).Updates(updates).Error
}

// DeleteBySellerAndProduct removes a cart line
func (r *GormCartRepository) DeleteBySellerAndProduct(userID, shopID, productID uint) error {
	return r.db.Where("user_id = ? AND shop_id = ? AND product_id = ?",
		userID, shopID, productID).Delete(&models.CartItem{}).Error
}

// ClearBySeller drops all cart lines of a seller in a shop
func (r *GormCartRepository) ClearBySeller(userID, shopID uint) error {
	return r.db.Where("user_id = ? AND shop_id = ?", userID, shopID).Delete(&models.CartItem{}).Error
}
