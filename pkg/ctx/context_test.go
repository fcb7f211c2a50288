package ctx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestSuccessWritesBareBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.Success(map[string]any{"access": "a", "refresh": "r"})
	})(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"access":"a","refresh":"r"}`, rec.Body.String())
}

func TestCreatedWritesBareList(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.Created([]int{1, 2})
	})(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `[1,2]`, rec.Body.String())
}

func TestParamAndQuery(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/items/{id}", appctx.Wrap(func(c *appctx.Context) {
		assert.Equal(t, "abc", c.Param("id"))
		assert.Equal(t, "shoes", c.Query("category"))
		assert.Equal(t, 3, c.QueryInt("page", 1))
		assert.Equal(t, 20, c.QueryInt("page_size", 20))
		c.NoContent()
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/abc?category=shoes&page=3&page_size=x", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

type signup struct {
	Email string `json:"email" validate:"required,email"`
}

func TestBindJSONValidationFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))

	var bound bool
	appctx.Wrap(func(c *appctx.Context) {
		var in signup
		bound = c.BindJSON(&in)
	})(rec, req)

	assert.False(t, bound)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Contains(t, env.Errors, "email")
}

func TestBindJSONMalformed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	appctx.Wrap(func(c *appctx.Context) {
		var in signup
		assert.False(t, c.BindJSON(&in))
	})(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		name string
		fn   func(c *appctx.Context)
		code int
		msg  string
	}{
		{"unauthorized", func(c *appctx.Context) { c.Unauthorized() }, 401, "Unauthorized"},
		{"forbidden custom", func(c *appctx.Context) { c.Forbidden("nope") }, 403, "nope"},
		{"not found", func(c *appctx.Context) { c.NotFound() }, 404, "Not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			var written int
			appctx.Wrap(func(c *appctx.Context) {
				tc.fn(c)
				written = c.WrittenStatus()
			})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.code, written)
			assert.Equal(t, tc.msg, decode(t, rec).Message)
		})
	}
}

func TestUserIDWithoutAuthIsZero(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		assert.Zero(t, c.UserID())
		c.Success(nil)
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))
}
