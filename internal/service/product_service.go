package service

import (
	"strings"
	"time"

	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"

	"github.com/shopspring/decimal"
)

// UpsertProductInput carries product create/update fields
type UpsertProductInput struct {
	ShopID       uint
	SKU          string
	Name         string
	Brand        string
	Model        string
	SellingPrice decimal.Decimal
	CostPrice    decimal.Decimal
	Active       *bool
}

// ProductService manages the catalog
type ProductService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
}

// NewProductService creates a product service
func NewProductService(productRepo repository.ProductRepository, inventoryRepo repository.InventoryRepository) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

// List fetches a catalog page
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// Get fetches a product with its live stock count
func (s *ProductService) Get(shopID, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(shopID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	count, err := s.inventoryRepo.CountInStock(shopID, id)
	if err != nil {
		return nil, err
	}
	product.InStockCount = count
	return product, nil
}

// Create adds a catalog entry
func (s *ProductService) Create(input UpsertProductInput) (*models.Product, error) {
	sku := strings.TrimSpace(input.SKU)
	name := strings.TrimSpace(input.Name)
	if input.ShopID == 0 || sku == "" || name == "" {
		return nil, ErrProductNotFound
	}
	if input.SellingPrice.IsNegative() || input.CostPrice.IsNegative() {
		return nil, ErrInvalidQuantity
	}

	count, err := s.productRepo.CountBySKU(input.ShopID, sku, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateSKU
	}

	now := time.Now()
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	product := &models.Product{
		ShopID:       input.ShopID,
		SKU:          sku,
		Name:         name,
		Brand:        strings.TrimSpace(input.Brand),
		Model:        strings.TrimSpace(input.Model),
		SellingPrice: models.NewMoneyFromDecimal(input.SellingPrice),
		CostPrice:    models.NewMoneyFromDecimal(input.CostPrice),
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update rewrites a catalog entry
func (s *ProductService) Update(id uint, input UpsertProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(input.ShopID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if sku := strings.TrimSpace(input.SKU); sku != "" && sku != product.SKU {
		count, err := s.productRepo.CountBySKU(input.ShopID, sku, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateSKU
		}
		product.SKU = sku
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	product.Brand = strings.TrimSpace(input.Brand)
	product.Model = strings.TrimSpace(input.Model)
	if !input.SellingPrice.IsNegative() {
		product.SellingPrice = models.NewMoneyFromDecimal(input.SellingPrice)
	}
	if !input.CostPrice.IsNegative() {
		product.CostPrice = models.NewMoneyFromDecimal(input.CostPrice)
	}
	if input.Active != nil {
		product.Active = *input.Active
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete retires a product. Stock rows stay for history.
func (s *ProductService) Delete(shopID, id uint) error {
	product, err := s.productRepo.GetByID(shopID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(shopID, id)
}
