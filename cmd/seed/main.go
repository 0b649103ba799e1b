package main

import (
	"fmt"
	"time"

	"github.com/mobipos/mobipos/internal/config"
	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/logger"
	"github.com/mobipos/mobipos/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.InitDefaultOwner(cfg.Seed.OwnerUsername, cfg.Seed.OwnerPassword, cfg.Seed.ShopName); err != nil {
		stdLog.Fatalf("Failed to seed owner: %v", err)
	}

	var shop models.Shop
	if err := models.DB.First(&shop).Error; err != nil {
		stdLog.Fatalf("Failed to load shop: %v", err)
	}

	products := []models.Product{
		{
			ShopID:       shop.ID,
			SKU:          "SAM-A15-128",
			Name:         "Samsung Galaxy A15 128GB",
			Brand:        "Samsung",
			Model:        "Galaxy A15",
			SellingPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(52000)),
			CostPrice:    models.NewMoneyFromDecimal(decimal.NewFromInt(46500)),
			Active:       true,
		},
		{
			ShopID:       shop.ID,
			SKU:          "XIA-R13C-256",
			Name:         "Xiaomi Redmi 13C 256GB",
			Brand:        "Xiaomi",
			Model:        "Redmi 13C",
			SellingPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(43000)),
			CostPrice:    models.NewMoneyFromDecimal(decimal.NewFromInt(38000)),
			Active:       true,
		},
		{
			ShopID:       shop.ID,
			SKU:          "INF-H40I-128",
			Name:         "Infinix Hot 40i 128GB",
			Brand:        "Infinix",
			Model:        "Hot 40i",
			SellingPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(34500)),
			CostPrice:    models.NewMoneyFromDecimal(decimal.NewFromInt(30500)),
			Active:       true,
		},
	}
	productIDs := make(map[string]uint, len(products))
	for _, product := range products {
		var existing models.Product
		err := models.DB.Where("shop_id = ? AND sku = ?", shop.ID, product.SKU).First(&existing).Error
		if err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.SKU, err)
				continue
			}
			stdLog.Printf("Created product: %s", product.SKU)
			productIDs[product.SKU] = product.ID
		} else {
			stdLog.Printf("Product already exists: %s", existing.SKU)
			productIDs[existing.SKU] = existing.ID
		}
	}

	supplier := models.Supplier{
		ShopID: shop.ID,
		Name:   "Karachi Mobile Traders",
		Phone:  "021-34567890",
	}
	var existingSupplier models.Supplier
	if err := models.DB.Where("shop_id = ? AND name = ?", shop.ID, supplier.Name).
		First(&existingSupplier).Error; err != nil {
		if err := models.DB.Create(&supplier).Error; err != nil {
			stdLog.Printf("Failed to create supplier: %v", err)
		} else {
			stdLog.Printf("Created supplier: %s", supplier.Name)
		}
	} else {
		supplier = existingSupplier
		stdLog.Printf("Supplier already exists: %s", supplier.Name)
	}

	customers := []models.Customer{
		{ShopID: shop.ID, Name: "Ahmed Raza", Phone: "0301-2345678", CNIC: "42101-1234567-1"},
		{ShopID: shop.ID, Name: "Bilal Khan", Phone: "0333-9876543"},
	}
	for _, customer := range customers {
		var existing models.Customer
		if err := models.DB.Where("shop_id = ? AND name = ?", shop.ID, customer.Name).
			First(&existing).Error; err != nil {
			if err := models.DB.Create(&customer).Error; err != nil {
				stdLog.Printf("Failed to create customer %s: %v", customer.Name, err)
			} else {
				stdLog.Printf("Created customer: %s", customer.Name)
			}
		} else {
			stdLog.Printf("Customer already exists: %s", existing.Name)
		}
	}

	// five units per product so checkout has stock to consume
	now := time.Now()
	for sku, productID := range productIDs {
		var count int64
		models.DB.Model(&models.InventoryItem{}).
			Where("shop_id = ? AND product_id = ?", shop.ID, productID).
			Count(&count)
		if count > 0 {
			stdLog.Printf("Inventory already seeded for %s", sku)
			continue
		}
		var product models.Product
		if err := models.DB.First(&product, productID).Error; err != nil {
			continue
		}
		units := make([]models.InventoryItem, 0, 5)
		for i := 0; i < 5; i++ {
			units = append(units, models.InventoryItem{
				ShopID:    shop.ID,
				ProductID: productID,
				IMEI:      fmt.Sprintf("35%06d%07d", productID, i+1),
				Status:    constants.InventoryStatusInStock,
				UnitCost:  product.CostPrice,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		if err := models.DB.Create(&units).Error; err != nil {
			stdLog.Printf("Failed to seed inventory for %s: %v", sku, err)
		} else {
			stdLog.Printf("Seeded %d units for %s", len(units), sku)
		}
	}

	stdLog.Printf("Seed completed")
}
