package models

import (
	"time"

	"gorm.io/gorm"
)

// Product catalog entry; stock is derived from inventory_items rows,
// never stored here
type Product struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                  // primary key
	ShopID       uint           `gorm:"not null;uniqueIndex:idx_product_shop_sku" json:"shop_id"` // owning shop
	SKU          string         `gorm:"not null;uniqueIndex:idx_product_shop_sku" json:"sku"`  // shop-unique article code
	Name         string         `gorm:"not null;index" json:"name"`                            // display name
	Brand        string         `gorm:"type:varchar(60);index" json:"brand"`                   // manufacturer
	Model        string         `gorm:"type:varchar(80)" json:"model"`                         // model designation
	SellingPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"selling_price"` // retail price
	CostPrice    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cost_price"`    // last purchase cost
	Active       bool           `gorm:"default:true;index" json:"active"`                      // sellable flag
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                               // created time
	UpdatedAt    time.Time      `json:"updated_at"`                                            // updated time
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                        // soft delete

	InStockCount int64 `gorm:"-" json:"in_stock_count"` // derived, filled by queries
}

// TableName sets the table name
func (Product) TableName() string {
	return "products"
}
