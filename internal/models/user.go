package models

import (
	"time"

	"gorm.io/gorm"
)

// User staff account (shop owner or counter worker)
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                    // primary key
	Username           string         `gorm:"uniqueIndex;not null" json:"username"`                    // login name
	PasswordHash       string         `gorm:"type:varchar(200);not null" json:"-"`                     // bcrypt hash
	FullName           string         `gorm:"type:varchar(120)" json:"full_name"`                      // display name
	Phone              string         `gorm:"type:varchar(32);index" json:"phone"`                     // contact number
	Role               string         `gorm:"type:varchar(20);not null;index" json:"role"`             // owner / worker
	Status             string         `gorm:"type:varchar(20);not null;default:'active'" json:"status"` // active / disabled
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                             // bumped to revoke tokens
	TokenInvalidBefore *time.Time     `json:"-"`                                                       // tokens issued earlier are rejected
	LastLoginAt        *time.Time     `json:"last_login_at"`                                           // last successful login
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                 // created time
	UpdatedAt          time.Time      `json:"updated_at"`                                              // updated time
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                          // soft delete
}

// TableName sets the table name
func (User) TableName() string {
	return "users"
}

// ShopWorker assigns a worker account to a shop
type ShopWorker struct {
	ID        uint           `gorm:"primarykey" json:"id"`                               // primary key
	UserID    uint           `gorm:"not null;uniqueIndex:idx_worker_shop" json:"user_id"` // worker account
	ShopID    uint           `gorm:"not null;uniqueIndex:idx_worker_shop" json:"shop_id"` // assigned shop
	Active    bool           `gorm:"not null;default:true;index" json:"active"`          // only active rows resolve a shop
	CreatedAt time.Time      `json:"created_at"`                                         // created time
	UpdatedAt time.Time      `json:"updated_at"`                                         // updated time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                     // soft delete

	Shop *Shop `gorm:"foreignKey:ShopID" json:"shop,omitempty"` // assigned shop detail
}

// TableName sets the table name
func (ShopWorker) TableName() string {
	return "shop_workers"
}
