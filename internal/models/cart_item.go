package models

import "time"

// CartItem is a per-seller staged line. One row per (user, shop,
// product); adding the same product again bumps quantity.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                       // primary key
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_shop_product" json:"user_id"` // seller
	ShopID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_shop_product" json:"shop_id"` // shop scope
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_shop_product" json:"product_id"` // product
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`                         // staged units
	CreatedAt time.Time `json:"created_at"`                                                 // created time
	UpdatedAt time.Time `json:"updated_at"`                                                 // updated time

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // preloaded product
}

// TableName sets the table name
func (CartItem) TableName() string {
	return "cart_items"
}
