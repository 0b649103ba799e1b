package models

import (
	"time"

	"gorm.io/gorm"
)

// Sale is a completed checkout. Items, consumed inventory units and
// the payment row are written in the same transaction that creates it.
type Sale struct {
	ID             uint           `gorm:"primarykey" json:"id"`                         // primary key
	InvoiceNo      string         `gorm:"type:varchar(32);not null;uniqueIndex" json:"invoice_no"` // INV-YYYYMMDD-NNN
	ShopID         uint           `gorm:"not null;index" json:"shop_id"`                // owning shop
	SellerID       uint           `gorm:"not null;index" json:"seller_id"`              // user who checked out
	CustomerID     *uint          `gorm:"index" json:"customer_id"`                     // optional buyer
	Subtotal       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`        // sum of line totals
	DiscountType   string         `gorm:"type:varchar(20)" json:"discount_type"`        // percentage/fixed, empty for none
	DiscountValue  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_value"`  // raw input value
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // rupees taken off
	TaxPercentage  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_percentage"`  // applied tax rate
	TaxAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_amount"`      // rupees of tax
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // amount due
	PaymentMethod  string         `gorm:"type:varchar(20);not null;index" json:"payment_method"` // cash/card/easypaisa/jazzcash/bank_transfer
	Status         string         `gorm:"type:varchar(20);not null;default:'completed';index" json:"status"` // pending/completed/cancelled/returned
	Notes          string         `gorm:"type:text" json:"notes"`                       // free-form notes
	SaleDate       time.Time      `gorm:"index" json:"sale_date"`                       // business date
	CreatedAt      time.Time      `json:"created_at"`                                   // created time
	UpdatedAt      time.Time      `json:"updated_at"`                                   // updated time
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                               // soft delete

	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`             // line items
	Payments []Payment  `gorm:"foreignKey:SaleID" json:"payments,omitempty"`          // payment rows
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`      // preloaded buyer
}

// TableName sets the table name
func (Sale) TableName() string {
	return "sales"
}

// SaleItem freezes the product name and unit price as sold
type SaleItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`             // primary key
	SaleID      uint      `gorm:"not null;index" json:"sale_id"`    // parent sale
	ProductID   uint      `gorm:"not null;index" json:"product_id"` // product
	ProductName string    `gorm:"not null" json:"product_name"`     // name snapshot
	Quantity    int       `gorm:"not null" json:"quantity"`         // units sold
	UnitPrice   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"` // price snapshot
	LineTotal   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"line_total"` // quantity * unit price
	CreatedAt   time.Time `json:"created_at"`                       // created time
	UpdatedAt   time.Time `json:"updated_at"`                       // updated time
}

// TableName sets the table name
func (SaleItem) TableName() string {
	return "sale_items"
}
