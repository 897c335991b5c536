package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	categorycontroller "github.com/moda-viva/storefront-api/controllers/category"
	productcontroller "github.com/moda-viva/storefront-api/controllers/product"
	usercontroller "github.com/moda-viva/storefront-api/controllers/user"
	"github.com/moda-viva/storefront-api/middleware"
)

// Catalog writes and user management sit behind the admin gate.
func registerAdminRoutes(r *gin.Engine, db *gorm.DB) {
	g := r.Group("/")
	g.Use(middleware.RequireAuth(db), middleware.RequireAdmin())

	g.POST("/category", categorycontroller.CreateCategory(db))
	g.PUT("/category/:id", categorycontroller.UpdateCategory(db))
	g.DELETE("/category/:id", categorycontroller.DeleteCategory(db))

	g.POST("/product", productcontroller.CreateProduct(db))
	g.PUT("/product/:id", productcontroller.UpdateProduct(db))
	g.DELETE("/product/:id", productcontroller.DeleteProduct(db))
	g.GET("/product/export-excel", productcontroller.ExportProductsToExcel(db))

	g.GET("/user", usercontroller.GetUsers(db))
	g.GET("/user/:id", usercontroller.GetUserByID(db))
	g.POST("/user", usercontroller.CreateUser(db))
	g.PUT("/user/:id", usercontroller.UpdateUser(db))
	g.DELETE("/user/:id", usercontroller.DeleteUser(db))
}
