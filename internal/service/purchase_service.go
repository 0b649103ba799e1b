package service

import (
	"strings"
	"time"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreatePurchaseItemInput is one product line on a stock receipt.
// IMEIs, when given, must match the quantity; each becomes one unit.
type CreatePurchaseItemInput struct {
	ProductID uint
	Quantity  int
	UnitCost  decimal.Decimal
	IMEIs     []string
}

// CreatePurchaseInput books a stock receipt
type CreatePurchaseInput struct {
	ShopID      uint
	SupplierID  uint
	ReferenceNo string
	Notes       string
	PurchasedAt time.Time
	Items       []CreatePurchaseItemInput
	ActorID     uint
	ClientIP    string
}

// PurchaseService books inbound stock: the receipt header, its lines
// and one inventory unit row per physical piece
type PurchaseService struct {
	purchaseRepo  repository.PurchaseRepository
	supplierRepo  repository.SupplierRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	auditRepo     repository.AuditLogRepository
}

// NewPurchaseService creates a purchase service
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	auditRepo repository.AuditLogRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo:  purchaseRepo,
		supplierRepo:  supplierRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
	}
}

// List fetches a purchase page
func (s *PurchaseService) List(filter repository.PurchaseListFilter) ([]models.Purchase, int64, error) {
	return s.purchaseRepo.List(filter)
}

// Get fetches a purchase with its items
func (s *PurchaseService) Get(shopID, id uint) (*models.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(shopID, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrPurchaseNotFound
	}
	return purchase, nil
}

// Create books a receipt and materializes its units
func (s *PurchaseService) Create(input CreatePurchaseInput) (*models.Purchase, error) {
	if input.ShopID == 0 || input.SupplierID == 0 || len(input.Items) == 0 {
		return nil, ErrPurchaseNotFound
	}

	supplier, err := s.supplierRepo.GetByID(input.ShopID, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, ErrSupplierNotFound
	}

	productIDs := make([]uint, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 || item.UnitCost.IsNegative() {
			return nil, ErrInvalidQuantity
		}
		if len(item.IMEIs) > 0 && len(item.IMEIs) != item.Quantity {
			return nil, ErrInvalidQuantity
		}
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(input.ShopID, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uint]models.Product, len(products))
	for _, product := range products {
		productMap[product.ID] = product
	}

	now := time.Now()
	purchasedAt := input.PurchasedAt
	if purchasedAt.IsZero() {
		purchasedAt = now
	}

	totalCost := decimal.Zero
	purchaseItems := make([]models.PurchaseItem, 0, len(input.Items))
	for _, item := range input.Items {
		if _, ok := productMap[item.ProductID]; !ok {
			return nil, ErrProductNotFound
		}
		totalCost = totalCost.Add(item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity))))
		purchaseItems = append(purchaseItems, models.PurchaseItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  models.NewMoneyFromDecimal(item.UnitCost),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	purchase := &models.Purchase{
		ShopID:      input.ShopID,
		SupplierID:  input.SupplierID,
		ReferenceNo: strings.TrimSpace(input.ReferenceNo),
		Status:      constants.PurchaseStatusReceived,
		TotalCost:   models.NewMoneyFromDecimal(totalCost),
		Notes:       input.Notes,
		CreatedByID: input.ActorID,
		PurchasedAt: purchasedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.purchaseRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.purchaseRepo.WithTx(tx).Create(purchase, purchaseItems); err != nil {
			return err
		}

		inventoryRepo := s.inventoryRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		for _, item := range input.Items {
			units := make([]models.InventoryItem, 0, item.Quantity)
			for i := 0; i < item.Quantity; i++ {
				imei := ""
				if len(item.IMEIs) > 0 {
					imei = strings.TrimSpace(item.IMEIs[i])
				}
				units = append(units, models.InventoryItem{
					ShopID:     input.ShopID,
					ProductID:  item.ProductID,
					PurchaseID: &purchase.ID,
					IMEI:       imei,
					Status:     constants.InventoryStatusInStock,
					UnitCost:   models.NewMoneyFromDecimal(item.UnitCost),
					CreatedAt:  now,
					UpdatedAt:  now,
				})
			}
			if err := inventoryRepo.CreateBatch(units); err != nil {
				return err
			}

			product := productMap[item.ProductID]
			product.CostPrice = models.NewMoneyFromDecimal(item.UnitCost)
			product.UpdatedAt = now
			if err := productRepo.Update(&product); err != nil {
				return err
			}
		}

		return s.auditRepo.WithTx(tx).Create(&models.AuditLog{
			ShopID:     input.ShopID,
			UserID:     input.ActorID,
			Action:     constants.AuditActionPurchaseCreated,
			EntityType: "purchase",
			EntityID:   purchase.ID,
			Detail: models.JSON{
				"supplier_id":  input.SupplierID,
				"reference_no": purchase.ReferenceNo,
				"total_cost":   purchase.TotalCost,
			},
			IP:        input.ClientIP,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.Get(input.ShopID, purchase.ID)
}

// Cancel voids a receipt. Allowed only while every unit it brought in
// is still in stock; the units are marked returned.
func (s *PurchaseService) Cancel(shopID, id uint) (*models.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(shopID, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrPurchaseNotFound
	}
	if purchase.Status == constants.PurchaseStatusCancelled {
		return nil, ErrPurchaseCancelled
	}

	units, err := s.inventoryRepo.ListByPurchase(shopID, purchase.ID)
	if err != nil {
		return nil, err
	}
	for _, unit := range units {
		if unit.Status != constants.InventoryStatusInStock {
			return nil, ErrPurchaseHasSoldUnits
		}
	}

	now := time.Now()
	err = s.purchaseRepo.Transaction(func(tx *gorm.DB) error {
		inventoryRepo := s.inventoryRepo.WithTx(tx)
		for _, unit := range units {
			if _, err := inventoryRepo.MarkStatus(shopID, unit.ID, constants.InventoryStatusReturned); err != nil {
				return err
			}
		}
		purchase.Status = constants.PurchaseStatusCancelled
		purchase.UpdatedAt = now
		return s.purchaseRepo.WithTx(tx).Update(purchase)
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}
