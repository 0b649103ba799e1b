package models

import "time"

// InvoiceSequence hands out per-shop per-day invoice numbers. The row
// is locked and bumped inside the checkout transaction so concurrent
// sales can never draw the same number.
type InvoiceSequence struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                // primary key
	ShopID    uint      `gorm:"not null;uniqueIndex:idx_invoice_seq_shop_day" json:"shop_id"` // shop scope
	Day       string    `gorm:"type:varchar(8);not null;uniqueIndex:idx_invoice_seq_shop_day" json:"day"` // YYYYMMDD
	NextSeq   int       `gorm:"not null;default:1" json:"next_seq"`                  // next number to hand out
	CreatedAt time.Time `json:"created_at"`                                          // created time
	UpdatedAt time.Time `json:"updated_at"`                                          // updated time
}

// TableName sets the table name
func (InvoiceSequence) TableName() string {
	return "invoice_sequences"
}
