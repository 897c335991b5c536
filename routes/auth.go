package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	usercontroller "github.com/moda-viva/storefront-api/controllers/user"
)

func registerAuthRoutes(r *gin.Engine, db *gorm.DB) {
	r.POST("/register", usercontroller.Register(db))
	r.POST("/login", usercontroller.Login(db))
}
