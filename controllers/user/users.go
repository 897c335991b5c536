package usercontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/moda-viva/storefront-api/apperrors"
	"github.com/moda-viva/storefront-api/auth"
	"github.com/moda-viva/storefront-api/models"
)

type CreateUserInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func parseRole(s string) (models.Role, error) {
	switch models.Role(s) {
	case models.RoleUser, models.RoleAdmin:
		return models.Role(s), nil
	default:
		return "", apperrors.Newf(apperrors.Validation, "unknown role: %s", s)
	}
}

func findUser(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return nil, false
	}

	var user models.User
	if err := db.First(&user, uint(id64)).Error; err != nil {
		apperrors.Respond(c, err)
		return nil, false
	}
	return &user, true
}

// GET /user (admin)
func GetUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("id").Find(&users).Error; err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": users})
	}
}

// GET /user/:id (admin)
func GetUserByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := findUser(c, db)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": user})
	}
}

// POST /user (admin)
func CreateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
			return
		}

		role := models.RoleUser
		if input.Role != "" {
			parsed, err := parseRole(input.Role)
			if err != nil {
				apperrors.Respond(c, err)
				return
			}
			role = parsed
		}

		var existing models.User
		err := db.Where("email = ?", input.Email).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(c, err)
			return
		}

		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}

		user := models.User{
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hash,
			Role:         role,
		}
		if err := db.Create(&user).Error; err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": user})
	}
}

// PUT /user/:id (admin). Only the supplied fields change; a password field
// triggers a rehash.
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := findUser(c, db)
		if !ok {
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
			return
		}

		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Email != nil && *input.Email != user.Email {
			var existing models.User
			err := db.Where("email = ? AND id <> ?", *input.Email, user.ID).First(&existing).Error
			if err == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Respond(c, err)
				return
			}
			user.Email = *input.Email
		}
		if input.Password != nil {
			if len(*input.Password) < 6 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 6 characters"})
				return
			}
			hash, err := auth.HashPassword(*input.Password)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
				return
			}
			user.PasswordHash = hash
		}
		if input.Role != nil {
			role, err := parseRole(*input.Role)
			if err != nil {
				apperrors.Respond(c, err)
				return
			}
			user.Role = role
		}

		if err := db.Save(user).Error; err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": user})
	}
}

// DELETE /user/:id (admin). The user's cart rows go with the account; orders
// stay for bookkeeping with user_id nulled by the foreign key.
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := findUser(c, db)
		if !ok {
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Order{}).Where("user_id = ?", user.ID).
				Update("user_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(user).Error
		})
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusNoContent, nil)
	}
}
