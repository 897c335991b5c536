package ordercontroller_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/moda-viva/storefront-api/auth"
	"github.com/moda-viva/storefront-api/database"
	"github.com/moda-viva/storefront-api/models"
	"github.com/moda-viva/storefront-api/routes"
)

func setup(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	r := gin.New()
	routes.SetupRoutes(r, db)
	return r, db
}

func userWithToken(t *testing.T, db *gorm.DB, email string, role models.Role) (*models.User, string) {
	t.Helper()
	u := models.User{Name: "Test", Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(&u).Error)
	token, err := auth.GenerateToken(&u)
	require.NoError(t, err)
	return &u, token
}

func request(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOrderVisibility(t *testing.T) {
	r, db := setup(t)
	_, aliceToken := userWithToken(t, db, "alice@test.dev", models.RoleUser)
	_, bobToken := userWithToken(t, db, "bob@test.dev", models.RoleUser)
	_, adminToken := userWithToken(t, db, "root@test.dev", models.RoleAdmin)

	p := models.Product{Name: "Camiseta", Slug: "camiseta", Price: 24.20, Stock: 10, Active: true, Path: "/uploads/products/default.webp"}
	require.NoError(t, db.Create(&p).Error)

	w := request(r, http.MethodPost, "/order", aliceToken,
		fmt.Sprintf(`{"items":[{"product_id":%d,"quantity":1}],"shipping_address":"Calle Mayor 1"}`, p.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	orderPath := fmt.Sprintf("/order/%d", created.Data.ID)

	// The owner and admins see the order; other users get a 404, not a 403,
	// so order IDs leak nothing.
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, orderPath, aliceToken, "").Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, orderPath, adminToken, "").Code)
	assert.Equal(t, http.StatusNotFound, request(r, http.MethodGet, orderPath, bobToken, "").Code)

	// Listing is scoped the same way.
	w = request(r, http.MethodGet, "/order", bobToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed.Data)

	w = request(r, http.MethodGet, "/order", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed.Data, 1)
}

func TestOrderStatusUpdateOverHTTP(t *testing.T) {
	r, db := setup(t)
	_, aliceToken := userWithToken(t, db, "alice@test.dev", models.RoleUser)

	p := models.Product{Name: "Sudadera", Slug: "sudadera", Price: 60.50, Stock: 5, Active: true, Path: "/uploads/products/default.webp"}
	require.NoError(t, db.Create(&p).Error)

	w := request(r, http.MethodPost, "/order", aliceToken,
		fmt.Sprintf(`{"items":[{"product_id":%d,"quantity":2}]}`, p.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	orderPath := fmt.Sprintf("/order/%d", created.Data.ID)

	w = request(r, http.MethodPut, orderPath, aliceToken, `{"status":"cancelled"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var product models.Product
	require.NoError(t, db.First(&product, p.ID).Error)
	assert.Equal(t, 6, product.Stock) // 5 - 2 + 2 + 1

	// Terminal orders reject further moves.
	w = request(r, http.MethodPut, orderPath, aliceToken, `{"status":"shipped"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(r, http.MethodPost, "/order", aliceToken,
		fmt.Sprintf(`{"items":[{"product_id":%d,"quantity":99}]}`, p.ID))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"available":6`)
}
