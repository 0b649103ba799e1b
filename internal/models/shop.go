package models

import (
	"time"

	"gorm.io/gorm"
)

// Shop tenant boundary; every domain row is scoped by shop_id
type Shop struct {
	ID                uint           `gorm:"primarykey" json:"id"`                       // primary key
	Name              string         `gorm:"not null" json:"name"`                       // shop name
	Address           string         `gorm:"type:varchar(255)" json:"address"`           // street address
	Phone             string         `gorm:"type:varchar(32)" json:"phone"`              // contact number
	OwnerID           uint           `gorm:"index;not null" json:"owner_id"`             // owning staff account
	NotificationEmail string         `gorm:"type:varchar(120)" json:"notification_email"` // receives sale / stock alerts
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                    // created time
	UpdatedAt         time.Time      `json:"updated_at"`                                 // updated time
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                             // soft delete
}

// TableName sets the table name
func (Shop) TableName() string {
	return "shops"
}
