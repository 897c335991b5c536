package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/moda-viva/storefront-api/apperrors"
	"github.com/moda-viva/storefront-api/models"
)

// POST /product (admin). Multipart form: name, price and stock required;
// slug, description, size, category_id, active, a JSON "sizes" array, and
// image / image_secondary files optional.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		stockStr := c.PostForm("stock")
		if name == "" || priceStr == "" || stockStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, price and stock are required"})
			return
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stock"})
			return
		}

		slugVal := c.PostForm("slug")
		if slugVal == "" {
			slugVal = slug.Make(name)
		}
		var count int64
		db.Model(&models.Product{}).Where("slug = ?", slugVal).Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slug already in use"})
			return
		}

		size := c.PostForm("size")
		if size == "" {
			size = "M"
		}
		if !models.IsValidSize(size) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid size"})
			return
		}

		active := true
		if v := c.PostForm("active"); v != "" {
			active, err = strconv.ParseBool(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid active flag"})
				return
			}
		}

		var categoryID *uint
		if v := c.PostForm("category_id"); v != "" {
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
			categoryID = &category.ID
		}

		sizes, err := parseSizes(c.PostForm("sizes"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		path := defaultImagePath
		if file, ferr := c.FormFile("image"); ferr == nil {
			if path, err = saveImage(c, file); err != nil {
				apperrors.Respond(c, err)
				return
			}
		}
		var imageSecondary *string
		if file, ferr := c.FormFile("image_secondary"); ferr == nil {
			p, err := saveImage(c, file)
			if err != nil {
				apperrors.Respond(c, err)
				return
			}
			imageSecondary = &p
		}

		product := models.Product{
			CategoryID:     categoryID,
			Name:           name,
			Slug:           slugVal,
			Description:    c.PostForm("description"),
			Price:          price,
			Active:         active,
			Path:           path,
			ImageSecondary: imageSecondary,
			Size:           size,
			Stock:          stock,
			Sizes:          sizes,
		}
		if err := db.Create(&product).Error; err != nil {
			apperrors.Respond(c, err)
			return
		}

		db.Preload("Sizes").Preload("Category").First(&product, product.ID)
		c.JSON(http.StatusCreated, gin.H{"data": product})
	}
}
