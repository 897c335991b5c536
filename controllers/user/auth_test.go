package usercontroller_test

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

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	r := gin.New()
	routes.SetupRoutes(r, db)
	return r, db
}

func doJSON(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginMe(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/register", "",
		`{"name":"Ana","email":"ana@test.dev","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reg struct {
		Data struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.NotEmpty(t, reg.Data.Token)
	assert.Equal(t, models.RoleUser, reg.Data.User.Role)

	// Duplicate email is rejected.
	w = doJSON(r, http.MethodPost, "/register", "",
		`{"name":"Ana","email":"ana@test.dev","password":"secret123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/login", "",
		`{"email":"ana@test.dev","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = doJSON(r, http.MethodGet, "/me", login.Data.Token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana@test.dev")
	// The hash never leaves the server.
	assert.NotContains(t, w.Body.String(), "password")
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/register", "",
		`{"name":"Ana","email":"ana@test.dev","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/login", "",
		`{"email":"ana@test.dev","password":"wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/login", "",
		`{"email":"nobody@test.dev","password":"secret123"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/cart", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/me", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminGate(t *testing.T) {
	r, db := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/register", "",
		`{"name":"Ana","email":"ana@test.dev","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var reg struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	// Regular users cannot list accounts.
	w = doJSON(r, http.MethodGet, "/user", reg.Data.Token, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	hash, err := auth.HashPassword("adminpass")
	require.NoError(t, err)
	admin := models.User{Name: "Root", Email: "root@test.dev", PasswordHash: hash, Role: models.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)

	adminToken, err := auth.GenerateToken(&admin)
	require.NoError(t, err)

	w = doJSON(r, http.MethodGet, "/user", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "root@test.dev")

	w = doJSON(r, http.MethodPost, "/category", adminToken, `{"name":"Camisetas"}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
