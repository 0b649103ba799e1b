package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a shop-scoped buyer record, required for loans and
// optional on plain sales
type Customer struct {
	ID        uint           `gorm:"primarykey" json:"id"`           // primary key
	ShopID    uint           `gorm:"not null;index" json:"shop_id"`  // owning shop
	Name      string         `gorm:"not null;index" json:"name"`     // full name
	Phone     string         `gorm:"type:varchar(20);index" json:"phone"` // contact number
	CNIC      string         `gorm:"type:varchar(20)" json:"cnic"`   // national id, optional
	Address   string         `gorm:"type:varchar(255)" json:"address"` // street address
	Notes     string         `gorm:"type:text" json:"notes"`         // free-form notes
	CreatedAt time.Time      `json:"created_at"`                     // created time
	UpdatedAt time.Time      `json:"updated_at"`                     // updated time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                 // soft delete
}

// TableName sets the table name
func (Customer) TableName() string {
	return "customers"
}
