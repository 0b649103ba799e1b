package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mobipos/mobipos/internal/config"
	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Shop{},
		&models.ShopWorker{},
		&models.Product{},
		&models.InventoryItem{},
		&models.Customer{},
		&models.Supplier{},
		&models.Purchase{},
		&models.PurchaseItem{},
		&models.CartItem{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Payment{},
		&models.InvoiceSequence{},
		&models.Loan{},
		&models.LoanInstallment{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Sale: config.SaleConfig{
			TaxPercentage:     17,
			InvoicePrefix:     "INV",
			LowStockThreshold: 0,
		},
	}
}

func seedProduct(t *testing.T, db *gorm.DB, shopID uint, sku string, price int64) *models.Product {
	t.Helper()
	product := &models.Product{
		ShopID:       shopID,
		SKU:          sku,
		Name:         "Test Phone " + sku,
		Brand:        "TestBrand",
		SellingPrice: models.NewMoneyFromInt(price),
		CostPrice:    models.NewMoneyFromInt(price - 100),
		Active:       true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

func seedUnits(t *testing.T, db *gorm.DB, shopID, productID uint, count int) []models.InventoryItem {
	t.Helper()
	base := time.Now().Add(-time.Duration(count) * time.Minute)
	units := make([]models.InventoryItem, 0, count)
	for i := 0; i < count; i++ {
		unit := models.InventoryItem{
			ShopID:    shopID,
			ProductID: productID,
			IMEI:      fmt.Sprintf("86%04d%06d", productID, i+1),
			Status:    constants.InventoryStatusInStock,
			UnitCost:  models.NewMoneyFromInt(100),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&unit).Error; err != nil {
			t.Fatalf("seed unit failed: %v", err)
		}
		units = append(units, unit)
	}
	return units
}

func seedCustomer(t *testing.T, db *gorm.DB, shopID uint, name string) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		ShopID: shopID,
		Name:   name,
		Phone:  "0300-0000000",
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("seed customer failed: %v", err)
	}
	return customer
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}
