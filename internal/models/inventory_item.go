package models

import (
	"time"

	"gorm.io/gorm"
)

// InventoryItem is one physical unit of a product. A sale consumes
// units by flipping status to out_of_stock and stamping sale_id.
type InventoryItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                // primary key
	ShopID     uint           `gorm:"not null;index" json:"shop_id"`                       // owning shop
	ProductID  uint           `gorm:"not null;index:idx_inventory_product_status" json:"product_id"` // product
	PurchaseID *uint          `gorm:"index" json:"purchase_id"`                            // source purchase, nil for manual entry
	SaleID     *uint          `gorm:"index" json:"sale_id"`                                // consuming sale while out_of_stock
	IMEI       string         `gorm:"type:varchar(32);index" json:"imei"`                  // serial/IMEI, optional
	Status     string         `gorm:"type:varchar(20);not null;default:'in_stock';index:idx_inventory_product_status" json:"status"` // in_stock/out_of_stock/damaged/returned
	UnitCost   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_cost"` // acquisition cost
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                             // created time, FIFO order
	UpdatedAt  time.Time      `json:"updated_at"`                                          // updated time
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                      // soft delete

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // preloaded product
}

// TableName sets the table name
func (InventoryItem) TableName() string {
	return "inventory_items"
}
