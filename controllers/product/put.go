package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/moda-viva/storefront-api/apperrors"
	"github.com/moda-viva/storefront-api/models"
)

// PUT /product/:id (admin). Partial multipart update; a provided "sizes"
// array wholesale-replaces the existing per-size stock rows, and replaced
// images are removed from disk.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Preload("Sizes").First(&product, "id = ?", c.Param("id")).Error; err != nil {
			apperrors.Respond(c, err)
			return
		}

		if v, ok := c.GetPostForm("name"); ok && v != "" {
			product.Name = v
		}
		if v, ok := c.GetPostForm("slug"); ok && v != "" {
			var count int64
			db.Model(&models.Product{}).
				Where("slug = ? AND id <> ?", v, product.ID).
				Count(&count)
			if count > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "slug already in use"})
				return
			}
			product.Slug = v
		}
		if v, ok := c.GetPostForm("description"); ok {
			product.Description = v
		}
		if v, ok := c.GetPostForm("price"); ok {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil || price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
				return
			}
			product.Price = price
		}
		if v, ok := c.GetPostForm("stock"); ok {
			stock, err := strconv.Atoi(v)
			if err != nil || stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stock"})
				return
			}
			product.Stock = stock
		}
		if v, ok := c.GetPostForm("size"); ok && v != "" {
			if !models.IsValidSize(v) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid size"})
				return
			}
			product.Size = v
		}
		if v, ok := c.GetPostForm("active"); ok && v != "" {
			active, err := strconv.ParseBool(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid active flag"})
				return
			}
			product.Active = active
		}
		if v, ok := c.GetPostForm("category_id"); ok {
			if v == "" {
				product.CategoryID = nil
			} else {
				id64, err := strconv.ParseUint(v, 10, 64)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
					return
				}
				var category models.Category
				if err := db.First(&category, uint(id64)).Error; err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "category does not exist"})
					return
				}
				product.CategoryID = &category.ID
			}
		}

		if file, ferr := c.FormFile("image"); ferr == nil {
			newPath, err := saveImage(c, file)
			if err != nil {
				apperrors.Respond(c, err)
				return
			}
			removeImage(product.Path)
			product.Path = newPath
		}
		if file, ferr := c.FormFile("image_secondary"); ferr == nil {
			newPath, err := saveImage(c, file)
			if err != nil {
				apperrors.Respond(c, err)
				return
			}
			if product.ImageSecondary != nil {
				removeImage(*product.ImageSecondary)
			}
			product.ImageSecondary = &newPath
		}

		sizesField, hasSizes := c.GetPostForm("sizes")
		var newSizes []models.ProductSize
		if hasSizes {
			var err error
			if newSizes, err = parseSizes(sizesField); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit("Sizes").Save(&product).Error; err != nil {
				return err
			}
			if !hasSizes {
				return nil
			}
			if err := tx.Where("product_id = ?", product.ID).
				Delete(&models.ProductSize{}).Error; err != nil {
				return err
			}
			for i := range newSizes {
				newSizes[i].ProductID = product.ID
			}
			if len(newSizes) == 0 {
				return nil
			}
			return tx.Create(&newSizes).Error
		})
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		db.Preload("Sizes").Preload("Category").First(&product, product.ID)
		c.JSON(http.StatusOK, gin.H{"data": product})
	}
}
