package models

import "time"

// AccessorySlug marks the category whose products are sold without a size
// choice; their availability always comes from the aggregate stock column.
const AccessorySlug = "accesorios"

type Category struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"unique;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
