package service

import (
	"strings"
	"time"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"

	"github.com/shopspring/decimal"
)

// AddInventoryUnitsInput adds units by hand, outside a purchase
type AddInventoryUnitsInput struct {
	ShopID    uint
	ProductID uint
	Quantity  int
	UnitCost  decimal.Decimal
	IMEIs     []string
}

// validUnitStatusMoves lists the hand-operated status flips. Sales
// move units through consume/restore instead.
var validUnitStatusMoves = map[string]map[string]bool{
	constants.InventoryStatusInStock: {
		constants.InventoryStatusDamaged:  true,
		constants.InventoryStatusReturned: true,
	},
	constants.InventoryStatusDamaged: {
		constants.InventoryStatusInStock: true,
	},
	constants.InventoryStatusReturned: {
		constants.InventoryStatusInStock: true,
	},
}

// InventoryService manages unit rows directly
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
}

// NewInventoryService creates an inventory service
func NewInventoryService(inventoryRepo repository.InventoryRepository, productRepo repository.ProductRepository) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
	}
}

// List fetches a unit page
func (s *InventoryService) List(filter repository.InventoryListFilter) ([]models.InventoryItem, int64, error) {
	return s.inventoryRepo.List(filter)
}

// AddUnits inserts unit rows without a purchase receipt
func (s *InventoryService) AddUnits(input AddInventoryUnitsInput) ([]models.InventoryItem, error) {
	if input.ShopID == 0 || input.ProductID == 0 || input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if len(input.IMEIs) > 0 && len(input.IMEIs) != input.Quantity {
		return nil, ErrInvalidQuantity
	}
	if input.UnitCost.IsNegative() {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(input.ShopID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	now := time.Now()
	units := make([]models.InventoryItem, 0, input.Quantity)
	for i := 0; i < input.Quantity; i++ {
		imei := ""
		if len(input.IMEIs) > 0 {
			imei = strings.TrimSpace(input.IMEIs[i])
		}
		units = append(units, models.InventoryItem{
			ShopID:    input.ShopID,
			ProductID: input.ProductID,
			IMEI:      imei,
			Status:    constants.InventoryStatusInStock,
			UnitCost:  models.NewMoneyFromDecimal(input.UnitCost),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err := s.inventoryRepo.CreateBatch(units); err != nil {
		return nil, err
	}
	return units, nil
}

// ChangeUnitStatus flips a unit between in_stock, damaged and
// returned
func (s *InventoryService) ChangeUnitStatus(shopID, id uint, status string) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(shopID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrInventoryNotFound
	}
	if !validUnitStatusMoves[item.Status][status] {
		return nil, ErrInvalidSaleStatus
	}
	affected, err := s.inventoryRepo.MarkStatus(shopID, id, status)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInventoryNotFound
	}
	item.Status = status
	return item, nil
}

// StockCount reports the sellable count for a product
func (s *InventoryService) StockCount(shopID, productID uint) (int64, error) {
	return s.inventoryRepo.CountInStock(shopID, productID)
}
