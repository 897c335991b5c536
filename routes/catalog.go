package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	categorycontroller "github.com/moda-viva/storefront-api/controllers/category"
	productcontroller "github.com/moda-viva/storefront-api/controllers/product"
)

// Public catalog reads need no token.
func registerCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/category", categorycontroller.GetCategories(db))
	r.GET("/category/:id", categorycontroller.GetCategoryByID(db))

	r.GET("/product", productcontroller.GetProducts(db))
	r.GET("/product/:id", productcontroller.GetProductByID(db))
}
