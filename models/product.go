package models

import "time"

// IsValidSize reports whether s is one of the garment sizes the shop sells.
func IsValidSize(s string) bool {
	switch s {
	case "XS", "S", "M", "L", "XL", "XXL":
		return true
	}
	return false
}

type Product struct {
	ID             uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID     *uint         `json:"category_id"`
	Category       *Category     `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Name           string        `gorm:"not null" json:"name"`
	Slug           string        `gorm:"unique;not null" json:"slug"`
	Description    string        `gorm:"type:text" json:"description"`
	Price          float64       `gorm:"not null" json:"price"` // tax-inclusive
	Active         bool          `gorm:"default:true" json:"active"`
	Path           string        `gorm:"not null" json:"path"`
	ImageSecondary *string       `json:"image_secondary"`
	Size           string        `gorm:"type:varchar(4);default:'M'" json:"size"`
	Stock          int           `gorm:"default:0" json:"stock"`
	Sizes          []ProductSize `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// ProductSize tracks inventory for one size variant. When a product has any
// of these rows they supersede the aggregate Stock column for availability.
type ProductSize struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"uniqueIndex:idx_product_size;not null" json:"product_id"`
	Size      string `gorm:"uniqueIndex:idx_product_size;type:varchar(4);not null" json:"size"`
	Stock     int    `gorm:"default:0" json:"stock"`
}

// IsAccessory reports whether the product belongs to the no-size category.
// Category must be preloaded; products without one are treated as sized.
func (p *Product) IsAccessory() bool {
	return p.Category != nil && p.Category.Slug == AccessorySlug
}

// AvailableStock resolves how many units can be sold for the given size.
// Accessories and products without per-size rows fall back to the aggregate
// Stock column; otherwise the matching size row decides, and a size with no
// row sells zero. Sizes (and Category, for accessories) must be preloaded.
func (p *Product) AvailableStock(size string) int {
	if p.IsAccessory() || len(p.Sizes) == 0 {
		return p.Stock
	}
	for _, s := range p.Sizes {
		if s.Size == size {
			return s.Stock
		}
	}
	return 0
}

// RequiresSize reports whether cart writes for this product must carry a
// size. Only products with per-size stock rows outside the accessory
// category do.
func (p *Product) RequiresSize() bool {
	return !p.IsAccessory() && len(p.Sizes) > 0
}
