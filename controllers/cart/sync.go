package cartcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/moda-viva/storefront-api/apperrors"
	"github.com/moda-viva/storefront-api/middleware"
	"github.com/moda-viva/storefront-api/models"
)

type SyncItemInput struct {
	ProductID uint   `json:"id" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type SyncInput struct {
	Items []SyncItemInput `json:"items" binding:"required"`
}

// SyncCart wholesale-replaces the user's server-side cart with a
// client-held one. Quantities are clamped to the resolved availability;
// entries for unknown or out-of-stock products are dropped without error.
// Used when an anonymous session authenticates and its localStorage cart
// must become the ledger of record.
func SyncCart(db *gorm.DB, userID uint, items []SyncItemInput) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		for _, in := range items {
			product, err := loadProduct(tx, in.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}

			size, err := normalizeSize(product, in.Size)
			if err != nil {
				// A sized product without a usable size is dropped, same as
				// an out-of-stock one.
				continue
			}

			available := product.AvailableStock(size)
			if available <= 0 {
				continue
			}

			quantity := in.Quantity
			if quantity > available {
				quantity = available
			}

			item := models.CartItem{
				UserID:    userID,
				ProductID: product.ID,
				Size:      size,
				Quantity:  quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// POST /cart/sync
func SyncCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var input SyncInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
			return
		}

		if err := SyncCart(db, user.ID, input.Items); err != nil {
			apperrors.Respond(c, err)
			return
		}

		lines, err := ListCart(db, user.ID)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": lines})
	}
}
