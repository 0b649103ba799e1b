package service

import (
	"time"

	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"

	"github.com/shopspring/decimal"
)

// CartLineDetail is a cart line enriched for the till display
type CartLineDetail struct {
	ProductID    uint            `json:"product_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    models.Money    `json:"unit_price"`
	LineTotal    models.Money    `json:"line_total"`
	InStockCount int64           `json:"in_stock_count"`
	Product      *models.Product `json:"product"`
}

// CartDetail is the full cart payload with the running subtotal
type CartDetail struct {
	Lines    []CartLineDetail `json:"lines"`
	Subtotal models.Money     `json:"subtotal"`
}

// AddCartItemInput adds units to a cart line
type AddCartItemInput struct {
	UserID    uint
	ShopID    uint
	ProductID uint
	Quantity  int
}

// CartService keeps the per-seller staging area before checkout
type CartService struct {
	cartRepo      repository.CartRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
}

// NewCartService creates a cart service
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, inventoryRepo repository.InventoryRepository) *CartService {
	return &CartService{
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

// Get returns the seller's cart with prices and stock counts. Lines
// whose product disappeared or went inactive are dropped on read.
func (s *CartService) Get(userID, shopID uint) (*CartDetail, error) {
	if userID == 0 || shopID == 0 {
		return nil, ErrInvalidQuantity
	}
	items, err := s.cartRepo.ListBySeller(userID, shopID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uint, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	stockCounts, err := s.inventoryRepo.CountInStockByProducts(shopID, productIDs)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	lines := make([]CartLineDetail, 0, len(items))
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(shopID, item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
		}
		if product == nil || !product.Active {
			_ = s.cartRepo.DeleteBySellerAndProduct(userID, shopID, item.ProductID)
			continue
		}

		lineTotal := product.SellingPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		lines = append(lines, CartLineDetail{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    product.SellingPrice,
			LineTotal:    models.NewMoneyFromDecimal(lineTotal),
			InStockCount: stockCounts[item.ProductID],
			Product:      product,
		})
	}

	return &CartDetail{
		Lines:    lines,
		Subtotal: models.NewMoneyFromDecimal(subtotal),
	}, nil
}

// AddItem adds quantity onto an existing line or starts a new one
func (s *CartService) AddItem(input AddCartItemInput) error {
	if input.UserID == 0 || input.ShopID == 0 || input.ProductID == 0 || input.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(input.ShopID, input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if !product.Active {
		return ErrProductInactive
	}

	quantity := input.Quantity
	existing, err := s.cartRepo.GetBySellerAndProduct(input.UserID, input.ShopID, input.ProductID)
	if err != nil {
		return err
	}
	if existing != nil {
		quantity += existing.Quantity
	}

	inStock, err := s.inventoryRepo.CountInStock(input.ShopID, input.ProductID)
	if err != nil {
		return err
	}
	if int64(quantity) > inStock {
		return ErrInsufficientStock
	}

	now := time.Now()
	item := &models.CartItem{
		UserID:    input.UserID,
		ShopID:    input.ShopID,
		ProductID: input.ProductID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.cartRepo.Upsert(item)
}

// SetItemQuantity replaces a line's quantity; zero removes the line
func (s *CartService) SetItemQuantity(userID, shopID, productID uint, quantity int) error {
	if userID == 0 || shopID == 0 || productID == 0 || quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.cartRepo.DeleteBySellerAndProduct(userID, shopID, productID)
	}

	product, err := s.productRepo.GetByID(shopID, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if !product.Active {
		return ErrProductInactive
	}

	inStock, err := s.inventoryRepo.CountInStock(shopID, productID)
	if err != nil {
		return err
	}
	if int64(quantity) > inStock {
		return ErrInsufficientStock
	}

	now := time.Now()
	item := &models.CartItem{
		UserID:    userID,
		ShopID:    shopID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.cartRepo.Upsert(item)
}

// RemoveItem drops a cart line
func (s *CartService) RemoveItem(userID, shopID, productID uint) error {
	if userID == 0 || shopID == 0 || productID == 0 {
		return ErrInvalidQuantity
	}
	return s.cartRepo.DeleteBySellerAndProduct(userID, shopID, productID)
}

// Clear empties the seller's cart
func (s *CartService) Clear(userID, shopID uint) error {
	if userID == 0 || shopID == 0 {
		return ErrInvalidQuantity
	}
	return s.cartRepo.ClearBySeller(userID, shopID)
}
