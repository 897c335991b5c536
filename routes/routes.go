// Package routes wires every HTTP endpoint to its handler. Endpoints split
// into three surfaces: public catalog reads, authenticated user routes, and
// admin-only management routes.
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	registerAuthRoutes(r, db)
	registerCatalogRoutes(r, db)
	registerUserRoutes(r, db)
	registerAdminRoutes(r, db)
}
