package cartcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/moda-viva/storefront-api/apperrors"
	"github.com/moda-viva/storefront-api/middleware"
	"github.com/moda-viva/storefront-api/models"
)

type AddItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type SetQuantityInput struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// CartLine is a cart row joined with the live product: current price, image
// and availability, not the values at the time the row was written.
type CartLine struct {
	ProductID uint    `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`
	Path      string  `json:"path"`
	Stock     int     `json:"stock"`
	Quantity  int     `json:"quantity"`
}

// loadProduct fetches a product with the relations stock resolution needs.
func loadProduct(db *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := db.Preload("Sizes").Preload("Category").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// normalizeSize maps the client-supplied size onto the key the ledger
// stores: accessories and legacy products always key on the empty size.
func normalizeSize(product *models.Product, size string) (string, error) {
	if !product.RequiresSize() {
		return "", nil
	}
	if size == "" {
		return "", apperrors.New(apperrors.Validation, "size is required for this product")
	}
	if !models.IsValidSize(size) {
		return "", apperrors.New(apperrors.Validation, "invalid size")
	}
	return size, nil
}

// ListCart returns every cart row for the user joined with live product
// data.
func ListCart(db *gorm.DB, userID uint) ([]CartLine, error) {
	var items []models.CartItem
	if err := db.Preload("Product.Sizes").Preload("Product.Category").
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&items).Error; err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, CartLine{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Size:      item.Size,
			Path:      item.Product.Path,
			Stock:     item.Product.AvailableStock(item.Size),
			Quantity:  item.Quantity,
		})
	}
	return lines, nil
}

// AddItem inserts a (product, size) row or increments an existing one,
// refusing to exceed the resolved availability either way.
func AddItem(db *gorm.DB, userID uint, input AddItemInput) (*models.CartItem, error) {
	product, err := loadProduct(db, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.Validation, "product does not exist")
		}
		return nil, err
	}

	size, err := normalizeSize(product, input.Size)
	if err != nil {
		return nil, err
	}

	available := product.AvailableStock(size)
	if available < input.Quantity {
		return nil, apperrors.Stock(product.Name, available)
	}

	var item models.CartItem
	err = db.Where("user_id = ? AND product_id = ? AND size = ?", userID, product.ID, size).
		First(&item).Error
	switch {
	case err == nil:
		newQuantity := item.Quantity + input.Quantity
		if available < newQuantity {
			return nil, apperrors.Stock(product.Name, available)
		}
		item.Quantity = newQuantity
		if err := db.Save(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			UserID:    userID,
			ProductID: product.ID,
			Size:      size,
			Quantity:  input.Quantity,
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	default:
		return nil, err
	}
}

// SetQuantity overwrites the stored quantity of an existing row.
func SetQuantity(db *gorm.DB, userID, productID uint, input SetQuantityInput) (*models.CartItem, error) {
	product, err := loadProduct(db, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "product not found")
		}
		return nil, err
	}

	size, err := normalizeSize(product, input.Size)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	if err := db.Where("user_id = ? AND product_id = ? AND size = ?", userID, productID, size).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "cart item not found")
		}
		return nil, err
	}

	available := product.AvailableStock(size)
	if available < input.Quantity {
		return nil, apperrors.Stock(product.Name, available)
	}

	item.Quantity = input.Quantity
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		lines, err := ListCart(db, user.ID)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": lines})
	}
}

// POST /cart
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
			return
		}

		item, err := AddItem(db, user.ID, input)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": item})
	}
}

// PUT /cart/:productId
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var input SetQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
			return
		}

		item, err := SetQuantity(db, user.ID, uint(productID), input)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": item})
	}
}

// DELETE /cart/:productId (?size=M for sized products)
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		result := db.Where("user_id = ? AND product_id = ? AND size = ?",
			user.ID, uint(productID), c.Query("size")).
			Delete(&models.CartItem{})
		if result.Error != nil {
			apperrors.Respond(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			return
		}
		c.JSON(http.StatusNoContent, nil)
	}
}

// DELETE /cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if err := db.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
	}
}
