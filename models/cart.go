package models

import "time"

// CartItem is one (product, size) line of a user's cart. Size is empty for
// accessories and legacy products without per-size stock.
type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_cart_user_product_size;not null" json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_user_product_size;not null" json:"product_id"`
	Size      string    `gorm:"uniqueIndex:idx_cart_user_product_size;type:varchar(4);default:''" json:"size"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
