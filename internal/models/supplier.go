package models

import (
	"time"

	"gorm.io/gorm"
)

// Supplier is a shop-scoped vendor that purchases are booked against
type Supplier struct {
	ID        uint           `gorm:"primarykey" json:"id"`           // primary key
	ShopID    uint           `gorm:"not null;index" json:"shop_id"`  // owning shop
	Name      string         `gorm:"not null;index" json:"name"`     // vendor name
	Phone     string         `gorm:"type:varchar(20)" json:"phone"`  // contact number
	Address   string         `gorm:"type:varchar(255)" json:"address"` // street address
	Notes     string         `gorm:"type:text" json:"notes"`         // free-form notes
	CreatedAt time.Time      `json:"created_at"`                     // created time
	UpdatedAt time.Time      `json:"updated_at"`                     // updated time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                 // soft delete
}

// TableName sets the table name
func (Supplier) TableName() string {
	return "suppliers"
}
