package models

import (
	"time"

	"gorm.io/gorm"
)

// Purchase is an inbound stock receipt; receiving it creates one
// inventory_items row per unit
type Purchase struct {
	ID          uint           `gorm:"primarykey" json:"id"`                         // primary key
	ShopID      uint           `gorm:"not null;index" json:"shop_id"`                // owning shop
	SupplierID  uint           `gorm:"not null;index" json:"supplier_id"`            // vendor
	ReferenceNo string         `gorm:"type:varchar(60);index" json:"reference_no"`   // vendor invoice number
	Status      string         `gorm:"type:varchar(20);not null;default:'received';index" json:"status"` // received/cancelled
	TotalCost   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_cost"` // sum of item costs
	Notes       string         `gorm:"type:text" json:"notes"`                       // free-form notes
	CreatedByID uint           `gorm:"not null;index" json:"created_by_id"`          // booking user
	PurchasedAt time.Time      `gorm:"index" json:"purchased_at"`                    // receipt date
	CreatedAt   time.Time      `json:"created_at"`                                   // created time
	UpdatedAt   time.Time      `json:"updated_at"`                                   // updated time
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                               // soft delete

	Supplier *Supplier      `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"` // preloaded vendor
	Items    []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`    // line items
}

// TableName sets the table name
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem is one product line on a purchase
type PurchaseItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`              // primary key
	PurchaseID uint      `gorm:"not null;index" json:"purchase_id"` // parent purchase
	ProductID  uint      `gorm:"not null;index" json:"product_id"`  // product
	Quantity   int       `gorm:"not null" json:"quantity"`          // units received
	UnitCost   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_cost"` // cost per unit
	CreatedAt  time.Time `json:"created_at"`                        // created time
	UpdatedAt  time.Time `json:"updated_at"`                        // updated time

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // preloaded product
}

// TableName sets the table name
func (PurchaseItem) TableName() string {
	return "purchase_items"
}
