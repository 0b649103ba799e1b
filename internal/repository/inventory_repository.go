package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/models"

	"gorm.io/gorm"
)

// InventoryRepository is the inventory unit data access interface
type InventoryRepository interface {
	CreateBatch(items []models.InventoryItem) error
	List(filter InventoryListFilter) ([]models.InventoryItem, int64, error)
	GetByID(shopID, id uint) (*models.InventoryItem, error)
	Update(item *models.InventoryItem) error
	ListInStock(shopID, productID uint, limit int) ([]models.InventoryItem, error)
	ListByPurchase(shopID, purchaseID uint) ([]models.InventoryItem, error)
	ConsumeUnits(ids []uint, saleID uint, soldAt time.Time) (int64, error)
	RestoreBySale(saleID uint) (int64, error)
	MarkStatus(shopID, id uint, status string) (int64, error)
	CountInStock(shopID, productID uint) (int64, error)
	CountInStockByProducts(shopID uint, productIDs []uint) (map[uint]int64, error)
	WithTx(tx *gorm.DB) InventoryRepository
}

// GormInventoryRepository is the GORM implementation
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates an inventory repository
func NewInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// WithTx binds the repository to a transaction
func (r *GormInventoryRepository) WithTx(tx *gorm.DB) InventoryRepository {
	if tx == nil {
		return r
	}
	return &GormInventoryRepository{db: tx}
}

// CreateBatch inserts unit rows
func (r *GormInventoryRepository) CreateBatch(items []models.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(&items).Error
}

// List fetches a unit page
func (r *GormInventoryRepository) List(filter InventoryListFilter) ([]models.InventoryItem, int64, error) {
	query := r.db.Model(&models.InventoryItem{}).
		Where("shop_id = ?", filter.ShopID).
		Preload("Product")
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if imei := strings.TrimSpace(filter.IMEI); imei != "" {
		query = query.Where("imei LIKE ?", "%"+imei+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var items []models.InventoryItem
	if err := query.Order("id ASC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetByID fetches a shop's unit by id
func (r *GormInventoryRepository) GetByID(shopID, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.Where("shop_id = ?", shopID).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Update saves a unit
func (r *GormInventoryRepository) Update(item *models.InventoryItem) error {
	return r.db.Save(item).Error
}

// ListInStock fetches in-stock units for a product, oldest first
func (r *GormInventoryRepository) ListInStock(shopID, productID uint, limit int) ([]models.InventoryItem, error) {
	if shopID == 0 || productID == 0 {
		return nil, errors.New("invalid shop or product id")
	}
	query := r.db.Where("shop_id = ? AND product_id = ? AND status = ?",
		shopID, productID, constants.InventoryStatusInStock).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var items []models.InventoryItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByPurchase fetches every unit a purchase brought in
func (r *GormInventoryRepository) ListByPurchase(shopID, purchaseID uint) ([]models.InventoryItem, error) {
	if shopID == 0 || purchaseID == 0 {
		return nil, errors.New("invalid shop or purchase id")
	}
	var items []models.InventoryItem
	if err := r.db.Where("shop_id = ? AND purchase_id = ?", shopID, purchaseID).
		Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ConsumeUnits flips the given units to out_of_stock for a sale. The
// status guard makes the update a no-op for units another checkout
// grabbed first; callers must compare RowsAffected against len(ids).
func (r *GormInventoryRepository) ConsumeUnits(ids []uint, saleID uint, soldAt time.Time) (int64, error) {
	if len(ids) == 0 || saleID == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.InventoryItem{}).
		Where("id IN ? AND status = ?", ids, constants.InventoryStatusInStock).
		Updates(map[string]interface{}{
			"status":     constants.InventoryStatusOutOfStock,
			"sale_id":    saleID,
			"updated_at": soldAt,
		})
	return result.RowsAffected, result.Error
}

// RestoreBySale puts units consumed by a sale back in stock
func (r *GormInventoryRepository) RestoreBySale(saleID uint) (int64, error) {
	if saleID == 0 {
		return 0, nil
	}
	now := time.Now()
	result := r.db.Model(&models.InventoryItem{}).
		Where("sale_id = ? AND status = ?", saleID, constants.InventoryStatusOutOfStock).
		Updates(map[string]interface{}{
			"status":     constants.InventoryStatusInStock,
			"sale_id":    nil,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// MarkStatus moves a unit to damaged/returned/in_stock by hand
func (r *GormInventoryRepository) MarkStatus(shopID, id uint, status string) (int64, error) {
	if shopID == 0 || id == 0 {
		return 0, errors.New("invalid shop or item id")
	}
	result := r.db.Model(&models.InventoryItem{}).
		Where("id = ? AND shop_id = ?", id, shopID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// CountInStock counts sellable units for a product
func (r *GormInventoryRepository) CountInStock(shopID, productID uint) (int64, error) {
	if shopID == 0 || productID == 0 {
		return 0, errors.New("invalid shop or product id")
	}
	var count int64
	if err := r.db.Model(&models.InventoryItem{}).
		Where("shop_id = ? AND product_id = ? AND status = ?",
			shopID, productID, constants.InventoryStatusInStock).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountInStockByProducts batch-counts sellable units
func (r *GormInventoryRepository) CountInStockByProducts(shopID uint, productIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64)
	if len(productIDs) == 0 {
		return result, nil
	}

	type countRow struct {
		ProductID uint
		Total     int64
	}
	var rows []countRow
	if err := r.db.Model(&models.InventoryItem{}).
		Select("product_id, COUNT(*) as total").
		Where("shop_id = ? AND product_id IN ? AND status = ?",
			shopID, productIDs, constants.InventoryStatusInStock).
		Group("product_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ProductID] = row.Total
	}
	return result, nil
}
