package database

import (
	"gorm.io/gorm"

	"github.com/moda-viva/storefront-api/auth"
	"github.com/moda-viva/storefront-api/models"
)

// Seed loads the launch catalog: the five base categories, a handful of
// products with per-size stock, and an admin account. Running it twice is
// an error (unique slugs), so it is only wired to the -seed flag.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		categories := []models.Category{
			{Name: "Camisetas", Slug: "camisetas"},
			{Name: "Pantalones", Slug: "pantalones"},
			{Name: "Sudaderas", Slug: "sudaderas"},
			{Name: "Chaquetas", Slug: "chaquetas"},
			{Name: "Accesorios", Slug: models.AccessorySlug},
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}
		bySlug := map[string]uint{}
		for _, c := range categories {
			bySlug[c.Slug] = c.ID
		}

		camisetas := bySlug["camisetas"]
		pantalones := bySlug["pantalones"]
		sudaderas := bySlug["sudaderas"]
		accesorios := bySlug[models.AccessorySlug]

		products := []models.Product{
			{
				CategoryID:  &camisetas,
				Name:        "Camiseta Básica Blanca",
				Slug:        "camiseta-basica-blanca",
				Description: "Camiseta de algodón 100% en color blanco",
				Price:       19.99,
				Active:      true,
				Path:        "/images/products/camiseta-blanca.jpg",
				Size:        "M",
				Stock:       50,
				Sizes: []models.ProductSize{
					{Size: "S", Stock: 15},
					{Size: "M", Stock: 20},
					{Size: "L", Stock: 15},
				},
			},
			{
				CategoryID:  &camisetas,
				Name:        "Camiseta Negra Premium",
				Slug:        "camiseta-negra-premium",
				Description: "Camiseta de algodón premium en color negro",
				Price:       24.99,
				Active:      true,
				Path:        "/images/products/camiseta-negra.jpg",
				Size:        "L",
				Stock:       45,
			},
			{
				CategoryID:  &pantalones,
				Name:        "Jeans Azul Clásico",
				Slug:        "jeans-azul-clasico",
				Description: "Pantalón vaquero azul de corte clásico",
				Price:       59.99,
				Active:      true,
				Path:        "/images/products/jeans-azul.jpg",
				Size:        "M",
				Stock:       35,
				Sizes: []models.ProductSize{
					{Size: "S", Stock: 10},
					{Size: "M", Stock: 15},
					{Size: "L", Stock: 10},
				},
			},
			{
				CategoryID:  &sudaderas,
				Name:        "Sudadera Gris con Capucha",
				Slug:        "sudadera-gris-capucha",
				Description: "Sudadera gris con capucha y bolsillo canguro",
				Price:       39.99,
				Active:      true,
				Path:        "/images/products/sudadera-gris.jpg",
				Size:        "M",
				Stock:       25,
			},
			{
				CategoryID:  &accesorios,
				Name:        "Gorra Negra Bordada",
				Slug:        "gorra-negra-bordada",
				Description: "Gorra ajustable con logo bordado",
				Price:       14.99,
				Active:      true,
				Path:        "/images/products/gorra-negra.jpg",
				Stock:       60,
			},
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}

		hash, err := auth.HashPassword("changeme")
		if err != nil {
			return err
		}
		admin := models.User{
			Name:         "Admin",
			Email:        "admin@moda-viva.test",
			PasswordHash: hash,
			Role:         models.RoleAdmin,
		}
		return tx.Create(&admin).Error
	})
}
