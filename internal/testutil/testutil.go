// Package testutil boots a throwaway storefront database for tests and
// offers small helpers for seeding rows and driving the HTTP handler.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/config"
	_ "github.com/shashiranjanraj/storefront/database/migrations"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

const jwtSecret = "storefront-test-secret"

// NewDB migrates a fresh in-memory SQLite database and installs it as
// database.DB for the duration of the test. A single connection keeps every
// query on the same in-memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", "file::memory:?_foreign_keys=1")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	_, err = migration.New(db).Run()
	require.NoError(t, err)

	prevDB := database.DB
	prevSecret := config.JWTSecret()
	database.DB = db
	config.Set("JWT_SECRET", jwtSecret)

	t.Cleanup(func() {
		database.DB = prevDB
		config.Set("JWT_SECRET", prevSecret)
		_ = sqlDB.Close()
	})
	return db
}

// CreateUser inserts an active account with password "secret123".
func CreateUser(t *testing.T, db *gorm.DB, username string, role models.Role) models.User {
	t.Helper()

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	u := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// CreateProduct inserts a product owned by seller.
func CreateProduct(t *testing.T, db *gorm.DB, seller models.User, name, price string) models.Product {
	t.Helper()

	p := models.Product{
		SellerID:      seller.ID,
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: 10,
		Category:      "general",
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// Token issues an access token for u.
func Token(t *testing.T, u models.User) string {
	t.Helper()
	tok, err := auth.GenerateToken(u.ID, u.Role.String())
	require.NoError(t, err)
	return tok
}

// Response is a recorded HTTP exchange. Message and Errors are filled from
// the error envelope when Code is 400 or above.
type Response struct {
	Code    int
	Body    json.RawMessage
	Message string
	Errors  map[string]string
}

// Decode unmarshals the body into v.
func (r Response) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), "body: %s", string(r.Body))
}

// Do sends one request through h. body is JSON-encoded unless it is nil;
// token, when set, is sent as a bearer credential.
func Do(t *testing.T, h http.Handler, method, path, token string, body interface{}) Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := Response{Code: rec.Code, Body: rec.Body.Bytes()}
	if rec.Code >= http.StatusBadRequest && rec.Body.Len() > 0 {
		var env struct {
			Message string            `json:"message"`
			Errors  map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
		res.Message, res.Errors = env.Message, env.Errors
	}
	return res
}
