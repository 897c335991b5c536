package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/moda-viva/storefront-api/apperrors"
	"github.com/moda-viva/storefront-api/models"
)

// DELETE /product/:id (admin). Removes the product, its per-size stock, any
// cart lines pointing at it, and its images. Order items keep their
// snapshot rows.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			apperrors.Respond(c, err)
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", product.ID).
				Delete(&models.ProductSize{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", product.ID).
				Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		removeImage(product.Path)
		if product.ImageSecondary != nil {
			removeImage(*product.ImageSecondary)
		}

		c.JSON(http.StatusNoContent, nil)
	}
}
