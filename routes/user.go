package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartcontroller "github.com/moda-viva/storefront-api/controllers/cart"
	ordercontroller "github.com/moda-viva/storefront-api/controllers/order"
	usercontroller "github.com/moda-viva/storefront-api/controllers/user"
	"github.com/moda-viva/storefront-api/middleware"
)

// Routes any authenticated user may call: session, cart and their own
// orders.
func registerUserRoutes(r *gin.Engine, db *gorm.DB) {
	g := r.Group("/")
	g.Use(middleware.RequireAuth(db))

	g.POST("/logout", usercontroller.Logout())
	g.GET("/me", usercontroller.Me())

	g.GET("/cart", cartcontroller.GetCart(db))
	g.POST("/cart", cartcontroller.AddToCart(db))
	g.POST("/cart/sync", cartcontroller.SyncCartHandler(db))
	g.PUT("/cart/:productId", cartcontroller.UpdateCartItem(db))
	g.DELETE("/cart/:productId", cartcontroller.RemoveFromCart(db))
	g.DELETE("/cart", cartcontroller.ClearCart(db))

	g.GET("/order", ordercontroller.GetOrders(db))
	g.GET("/order/:id", ordercontroller.GetOrderByID(db))
	g.POST("/order", ordercontroller.CreateOrderHandler(db))
	g.PUT("/order/:id", ordercontroller.UpdateOrderHandler(db))
	g.DELETE("/order/:id", ordercontroller.DeleteOrderHandler(db))

	g.GET("/ws/orders", ordercontroller.OrderFeedHandler)
}
