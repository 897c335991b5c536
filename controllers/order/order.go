package ordercontroller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/moda-viva/storefront-api/apperrors"
	"github.com/moda-viva/storefront-api/middleware"
	"github.com/moda-viva/storefront-api/models"
)

const (
	// Listed prices already contain 21% VAT; order totals extract the tax
	// component rather than adding it on top.
	taxRate = 0.21

	// Flat shipping cost unless the request supplies an override.
	defaultShippingCost = 5.00
)

type OrderItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderInput struct {
	UserID          *uint            `json:"user_id"`
	Items           []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	ShippingAddress json.RawMessage  `json:"shipping_address"`
	ShippingCost    *float64         `json:"shipping_cost"`
}

type UpdateOrderInput struct {
	Status string `json:"status" binding:"required"`
}

// shippingAddressText keeps the address opaque: JSON objects are stored
// verbatim, plain strings without their quotes.
func shippingAddressText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// CreateOrder validates every line, computes totals, and writes the order
// with its item snapshots in one transaction. Stock is checked against the
// product's aggregate stock column (not the per-size ledger the cart uses)
// and decremented line by line, so a repeated product ID observes earlier
// decrements within the same order. Any failure rolls the whole order back.
func CreateOrder(db *gorm.DB, userID *uint, input CreateOrderInput) (*models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		totalWithTax := decimal.Zero
		items := make([]models.OrderItem, 0, len(input.Items))

		for _, line := range input.Items {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.Newf(apperrors.Validation, "product %d does not exist", line.ProductID)
				}
				return err
			}

			if !product.Active {
				return apperrors.Newf(apperrors.ProductUnavailable, "product %s is not available", product.Name)
			}
			if product.Stock < line.Quantity {
				return apperrors.Stock(product.Name, product.Stock)
			}

			// Persist the decrement immediately so a later line for the
			// same product sees the reduced stock.
			product.Stock -= line.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			lineTotal := decimal.NewFromFloat(product.Price).
				Mul(decimal.NewFromInt(int64(line.Quantity)))
			totalWithTax = totalWithTax.Add(lineTotal)

			items = append(items, models.OrderItem{
				ProductID:  product.ID,
				Quantity:   line.Quantity,
				UnitPrice:  product.Price,
				TotalPrice: lineTotal.InexactFloat64(),
			})
		}

		subtotal := totalWithTax.Div(decimal.NewFromFloat(1 + taxRate)).Round(2)
		tax := totalWithTax.Sub(subtotal).Round(2)

		shipping := defaultShippingCost
		if input.ShippingCost != nil && *input.ShippingCost >= 0 {
			shipping = *input.ShippingCost
		}
		total := totalWithTax.Add(decimal.NewFromFloat(shipping))

		order = models.Order{
			UserID:          userID,
			Items:           items,
			Subtotal:        subtotal.InexactFloat64(),
			Tax:             tax.InexactFloat64(),
			ShippingCost:    shipping,
			TotalPrice:      total.InexactFloat64(),
			Status:          models.OrderStatusPending,
			ShippingAddress: shippingAddressText(input.ShippingAddress),
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus moves an order through its lifecycle. A transition into
// cancelled restores each item's stock by quantity + 1, one extra unit per
// line; the deletion path restores the exact quantity instead. Clients
// depend on this historical asymmetry.
func UpdateOrderStatus(db *gorm.DB, orderID uint, newStatus models.OrderStatus) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "order not found")
		}
		return nil, err
	}

	if newStatus != order.Status && !order.Status.CanTransition(newStatus) {
		return nil, apperrors.Newf(apperrors.InvalidTransition,
			"cannot move order from %s to %s", order.Status, newStatus)
	}

	if newStatus == models.OrderStatusCancelled && order.Status != models.OrderStatusCancelled {
		err := db.Transaction(func(tx *gorm.DB) error {
			var items []models.OrderItem
			if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
				return err
			}
			for _, item := range items {
				var product models.Product
				if err := tx.First(&product, item.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						continue // product deleted since purchase
					}
					return err
				}
				product.Stock += item.Quantity + 1
				if err := tx.Save(&product).Error; err != nil {
					return err
				}
			}
			return tx.Model(&order).Update("status", newStatus).Error
		})
		if err != nil {
			return nil, err
		}
	} else if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
		return nil, err
	}

	if err := db.Preload("Items").Preload("User").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder removes an order and its items. Non-terminal orders first get
// their stock back, exactly the ordered quantity per line; cancelled and
// delivered orders are deleted without touching stock (cancelled ones
// already restored it).
func DeleteOrder(db *gorm.DB, orderID uint) error {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.NotFound, "order not found")
		}
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if !order.Status.Terminal() {
			var items []models.OrderItem
			if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
				return err
			}
			for _, item := range items {
				var product models.Product
				if err := tx.First(&product, item.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						continue
					}
					return err
				}
				product.Stock += item.Quantity
				if err := tx.Save(&product).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// GET /order. Admins see every order, users their own.
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		query := db.Preload("Items").Preload("User").Order("created_at DESC")
		if !user.Role.IsAdmin() {
			query = query.Where("user_id = ?", user.ID)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": orders})
	}
}

// GET /order/:id
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		order, ok := findOrderForUser(c, db, user)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": order})
	}
}

// POST /order
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var input CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
			return
		}

		// Only admins may place an order on someone else's behalf.
		userID := &user.ID
		if input.UserID != nil && user.Role.IsAdmin() {
			userID = input.UserID
		}

		order, err := CreateOrder(db, userID, input)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		broadcastOrder(order)
		c.JSON(http.StatusCreated, gin.H{"data": order})
	}
}

// PUT /order/:id
func UpdateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		order, ok := findOrderForUser(c, db, user)
		if !ok {
			return
		}

		var input UpdateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
			return
		}
		status, err := models.ParseOrderStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updated, err := UpdateOrderStatus(db, order.ID, status)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		broadcastOrder(updated)
		c.JSON(http.StatusOK, gin.H{"data": updated})
	}
}

// DELETE /order/:id
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		order, ok := findOrderForUser(c, db, user)
		if !ok {
			return
		}

		if err := DeleteOrder(db, order.ID); err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusNoContent, nil)
	}
}

// findOrderForUser loads the :id order, hiding other users' orders from
// non-admins behind a 404.
func findOrderForUser(c *gin.Context, db *gorm.DB, user *models.User) (*models.Order, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return nil, false
	}

	var order models.Order
	if err := db.Preload("Items").Preload("User").First(&order, uint(id64)).Error; err != nil {
		apperrors.Respond(c, err)
		return nil, false
	}

	if !user.Role.IsAdmin() && (order.UserID == nil || *order.UserID != user.ID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil, false
	}
	return &order, true
}
