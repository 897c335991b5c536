package categorycontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/moda-viva/storefront-api/apperrors"
	"github.com/moda-viva/storefront-api/models"
)

type CategoryInput struct {
	Name string `json:"name" binding:"required,max=255"`
	Slug string `json:"slug" binding:"max=255"`
}

// GET /category
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Find(&categories).Error; err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": categories})
	}
}

// GET /category/:id
func GetCategoryByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": category})
	}
}

// POST /category (admin)
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
			return
		}
		if input.Slug == "" {
			input.Slug = slug.Make(input.Name)
		}

		var count int64
		db.Model(&models.Category{}).Where("slug = ?", input.Slug).Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slug already in use"})
			return
		}

		category := models.Category{Name: input.Name, Slug: input.Slug}
		if err := db.Create(&category).Error; err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": category})
	}
}

// PUT /category/:id (admin)
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			apperrors.Respond(c, err)
			return
		}

		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
			return
		}
		if input.Slug == "" {
			input.Slug = slug.Make(input.Name)
		}

		var count int64
		db.Model(&models.Category{}).
			Where("slug = ? AND id <> ?", input.Slug, category.ID).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slug already in use"})
			return
		}

		category.Name = input.Name
		category.Slug = input.Slug
		if err := db.Save(&category).Error; err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": category})
	}
}

// DELETE /category/:id (admin). Products referencing the category keep
// existing with a null category_id.
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			apperrors.Respond(c, err)
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Product{}).
				Where("category_id = ?", category.ID).
				Update("category_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&category).Error
		})
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusNoContent, nil)
	}
}
