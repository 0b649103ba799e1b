package repository

import (
	"errors"
	"strings"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/models"

	"gorm.io/gorm"
)

// ProductRepository is the product data access interface
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(shopID, id uint) (*models.Product, error)
	GetBySKU(shopID uint, sku string) (*models.Product, error)
	ListByIDs(shopID uint, ids []uint) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(shopID, id uint) error
	CountBySKU(shopID uint, sku string, excludeID *uint) (int64, error)
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository is the GORM implementation
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx binds the repository to a transaction
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// List fetches a product page with optional in-stock counts
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{}).Where("shop_id = ?", filter.ShopID)
	if filter.OnlyActive {
		query = query.Where("active = ?", true)
	}
	if brand := strings.TrimSpace(filter.Brand); brand != "" {
		query = query.Where("brand = ?", brand)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR sku LIKE ? OR model LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("name ASC, id ASC").Find(&products).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithStock && len(products) > 0 {
		if err := r.fillInStockCounts(products); err != nil {
			return nil, 0, err
		}
	}

	return products, total, nil
}

func (r *GormProductRepository) fillInStockCounts(products []models.Product) error {
	ids := make([]uint, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	type stockRow struct {
		ProductID uint
		Count     int64
	}
	var rows []stockRow
	if err := r.db.Model(&models.InventoryItem{}).
		Select("product_id, COUNT(*) AS count").
		Where("product_id IN ? AND status = ?", ids, constants.InventoryStatusInStock).
		Group("product_id").
		Scan(&rows).Error; err != nil {
		return err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.ProductID] = row.Count
	}
	for i := range products {
		products[i].InStockCount = counts[products[i].ID]
	}
	return nil
}

// GetByID fetches a shop's product by id
func (r *GormProductRepository) GetByID(shopID, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("shop_id = ?", shopID).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySKU fetches a shop's product by SKU
func (r *GormProductRepository) GetBySKU(shopID uint, sku string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("shop_id = ? AND sku = ?", shopID, sku).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs batch-fetches a shop's products
func (r *GormProductRepository) ListByIDs(shopID uint, ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("shop_id = ? AND id IN ?", shopID, ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create inserts a product
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update saves a product
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete soft-deletes a shop's product
func (r *GormProductRepository) Delete(shopID, id uint) error {
	return r.db.Where("shop_id = ?", shopID).Delete(&models.Product{}, id).Error
}

// CountBySKU counts SKU occurrences within a shop
func (r *GormProductRepository) CountBySKU(shopID uint, sku string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("shop_id = ? AND sku = ?", shopID, sku)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
