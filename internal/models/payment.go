package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment is one money movement against a sale. Checkout writes the
// initial full-amount row; later rows come from installment receipts.
type Payment struct {
	ID         uint           `gorm:"primarykey" json:"id"`                        // primary key
	ShopID     uint           `gorm:"not null;index" json:"shop_id"`               // owning shop
	SaleID     uint           `gorm:"not null;index" json:"sale_id"`               // parent sale
	Method     string         `gorm:"type:varchar(20);not null;index" json:"method"` // cash/card/easypaisa/jazzcash/bank_transfer
	Amount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount"` // rupees received
	Status     string         `gorm:"type:varchar(20);not null;default:'completed';index" json:"status"` // completed/refunded
	Reference  string         `gorm:"type:varchar(64)" json:"reference"`           // external txn reference
	ReceivedAt time.Time      `gorm:"index" json:"received_at"`                    // receipt time
	CreatedAt  time.Time      `json:"created_at"`                                  // created time
	UpdatedAt  time.Time      `json:"updated_at"`                                  // updated time
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                              // soft delete
}

// TableName sets the table name
func (Payment) TableName() string {
	return "payments"
}
