package service

import (
	"errors"
	"testing"

	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*gorm.DB, *CartService) {
	t.Helper()
	db := newTestDB(t)
	svc := NewCartService(
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		repository.NewInventoryRepository(db),
	)
	return db, svc
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	db, svc := setupCartTest(t)
	product := seedProduct(t, db, 1, "SKU-C1", 1000)
	seedUnits(t, db, 1, product.ID, 5)

	for i := 0; i < 2; i++ {
		if err := svc.AddItem(AddCartItemInput{UserID: 2, ShopID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
			t.Fatalf("add item %d failed: %v", i+1, err)
		}
	}

	cart, err := svc.Get(2, 1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("lines want 1, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 2 {
		t.Fatalf("quantity want 2, got %d", cart.Lines[0].Quantity)
	}
	if !cart.Subtotal.Decimal.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("subtotal want 2000, got %s", cart.Subtotal)
	}
	if cart.Lines[0].InStockCount != 5 {
		t.Fatalf("in-stock count want 5, got %d", cart.Lines[0].InStockCount)
	}
}

func TestAddItemCapsAtAvailableStock(t *testing.T) {
	db, svc := setupCartTest(t)
	product := seedProduct(t, db, 1, "SKU-C2", 500)
	seedUnits(t, db, 1, product.ID, 2)

	if err := svc.AddItem(AddCartItemInput{UserID: 3, ShopID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add within stock failed: %v", err)
	}
	err := svc.AddItem(AddCartItemInput{UserID: 3, ShopID: 1, ProductID: product.ID, Quantity: 1})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}
}

func TestSetItemQuantityZeroRemovesLine(t *testing.T) {
	db, svc := setupCartTest(t)
	product := seedProduct(t, db, 1, "SKU-C3", 700)
	seedUnits(t, db, 1, product.ID, 3)

	if err := svc.AddItem(AddCartItemInput{UserID: 4, ShopID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := svc.SetItemQuantity(4, 1, product.ID, 0); err != nil {
		t.Fatalf("set quantity zero failed: %v", err)
	}

	cart, err := svc.Get(4, 1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("cart should be empty, got %d lines", len(cart.Lines))
	}
}

func TestAddItemRejectsInactiveProduct(t *testing.T) {
	db, svc := setupCartTest(t)
	product := seedProduct(t, db, 1, "SKU-C4", 900)
	seedUnits(t, db, 1, product.ID, 3)
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	err := svc.AddItem(AddCartItemInput{UserID: 5, ShopID: 1, ProductID: product.ID, Quantity: 1})
	if !errors.Is(err, ErrProductInactive) {
		t.Fatalf("want ErrProductInactive, got %v", err)
	}
	if err := svc.AddItem(AddCartItemInput{UserID: 5, ShopID: 1, ProductID: 999, Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestGetCartDropsVanishedProducts(t *testing.T) {
	db, svc := setupCartTest(t)
	product := seedProduct(t, db, 1, "SKU-C5", 600)
	seedUnits(t, db, 1, product.ID, 2)
	if err := svc.AddItem(AddCartItemInput{UserID: 6, ShopID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := db.Delete(&models.Product{}, product.ID).Error; err != nil {
		t.Fatalf("delete product failed: %v", err)
	}

	cart, err := svc.Get(6, 1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("vanished product line should be dropped, got %d", len(cart.Lines))
	}
}
