package repository

import (
	"testing"
	"time"

	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/models"
)

func seedTestUnits(t *testing.T, repo InventoryRepository, shopID, productID uint, n int) []uint {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	items := make([]models.InventoryItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, models.InventoryItem{
			ShopID:    shopID,
			ProductID: productID,
			Status:    constants.InventoryStatusInStock,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	if err := repo.CreateBatch(items); err != nil {
		t.Fatalf("create units failed: %v", err)
	}
	ids := make([]uint, 0, n)
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestConsumeUnitsGuardsAgainstDoubleSell(t *testing.T) {
	db := newTestDB(t)
	repo := NewInventoryRepository(db)
	ids := seedTestUnits(t, repo, 1, 10, 3)

	affected, err := repo.ConsumeUnits(ids[:2], 50, time.Now())
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if affected != 2 {
		t.Fatalf("affected want 2, got %d", affected)
	}

	// the first unit is already gone, so only the third flips
	affected, err = repo.ConsumeUnits([]uint{ids[0], ids[2]}, 51, time.Now())
	if err != nil {
		t.Fatalf("second consume failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected want 1, got %d", affected)
	}

	count, err := repo.CountInStock(1, 10)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("in-stock want 0, got %d", count)
	}
}

func TestRestoreBySalePutsUnitsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewInventoryRepository(db)
	ids := seedTestUnits(t, repo, 1, 10, 3)

	if _, err := repo.ConsumeUnits(ids, 60, time.Now()); err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	restored, err := repo.RestoreBySale(60)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if restored != 3 {
		t.Fatalf("restored want 3, got %d", restored)
	}

	for _, id := range ids {
		item, err := repo.GetByID(1, id)
		if err != nil {
			t.Fatalf("get unit failed: %v", err)
		}
		if item.Status != constants.InventoryStatusInStock {
			t.Fatalf("unit %d status want in_stock, got %s", id, item.Status)
		}
		if item.SaleID != nil {
			t.Fatalf("unit %d sale_id should be cleared", id)
		}
	}
}

func TestListInStockOrdersOldestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewInventoryRepository(db)
	ids := seedTestUnits(t, repo, 1, 10, 4)

	items, err := repo.ListInStock(1, 10, 2)
	if err != nil {
		t.Fatalf("list in stock failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 units, got %d", len(items))
	}
	if items[0].ID != ids[0] || items[1].ID != ids[1] {
		t.Fatalf("want oldest units %v, got [%d %d]", ids[:2], items[0].ID, items[1].ID)
	}
}
