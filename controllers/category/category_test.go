package categorycontroller_test

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

func setup(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	admin := models.User{Name: "Root", Email: "root@test.dev", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)
	token, err := auth.GenerateToken(&admin)
	require.NoError(t, err)

	r := gin.New()
	routes.SetupRoutes(r, db)
	return r, db, token
}

func request(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCategoryCRUD(t *testing.T) {
	r, _, token := setup(t)

	// Slug derived from the name when omitted.
	w := request(r, http.MethodPost, "/category", token, `{"name":"Camisetas de Verano"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "camisetas-de-verano", created.Data.Slug)

	// Duplicate slug is rejected.
	w = request(r, http.MethodPost, "/category", token, `{"name":"Otra","slug":"camisetas-de-verano"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	path := fmt.Sprintf("/category/%d", created.Data.ID)

	w = request(r, http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodPut, path, token, `{"name":"Camisetas","slug":"camisetas"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"camisetas"`)

	w = request(r, http.MethodDelete, path, token, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = request(r, http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCategoryDetachesProducts(t *testing.T) {
	r, db, token := setup(t)

	cat := models.Category{Name: "Chaquetas", Slug: "chaquetas"}
	require.NoError(t, db.Create(&cat).Error)
	p := models.Product{Name: "Chaqueta Vaquera", Slug: "chaqueta-vaquera", Price: 72.60,
		Stock: 3, Active: true, Path: "/uploads/products/default.webp", CategoryID: &cat.ID}
	require.NoError(t, db.Create(&p).Error)

	w := request(r, http.MethodDelete, fmt.Sprintf("/category/%d", cat.ID), token, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Nil(t, reloaded.CategoryID)
}
