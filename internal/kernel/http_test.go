package kernel_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/internal/kernel"
	"github.com/shashiranjanraj/storefront/internal/testutil"
	"github.com/shashiranjanraj/storefront/pkg/auth"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	k, err := kernel.NewHTTPKernel()
	require.NoError(t, err)
	return k.Handler()
}

func TestHealth(t *testing.T) {
	testutil.NewDB(t)
	h := newHandler(t)

	res := testutil.Do(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestRegisterLoginAndMe(t *testing.T) {
	testutil.NewDB(t)
	h := newHandler(t)

	res := testutil.Do(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "jane",
		"email":    "jane@example.com",
		"password": "secret123",
		"name":     "Jane Doe",
	})
	require.Equal(t, http.StatusCreated, res.Code, string(res.Body))

	res = testutil.Do(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "jane",
		"email":    "jane@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = testutil.Do(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "x"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Errors, "email")
	assert.Contains(t, res.Errors, "password")

	res = testutil.Do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "jane", "password": "nope-nope",
	})
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = testutil.Do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "jane", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, res.Code)
	var top map[string]json.RawMessage
	res.Decode(t, &top)
	assert.Contains(t, top, "access", "tokens sit at the top level of the body")
	assert.Contains(t, top, "refresh")
	var pair auth.TokenPair
	res.Decode(t, &pair)
	require.NotEmpty(t, pair.Access)

	res = testutil.Do(t, h, http.MethodGet, "/api/users/me", pair.Access, nil)
	require.Equal(t, http.StatusOK, res.Code)
	var me struct {
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Role      string `json:"role"`
	}
	res.Decode(t, &me)
	assert.Equal(t, "jane", me.Username)
	assert.Equal(t, "Jane", me.FirstName)
	assert.Equal(t, "Doe", me.LastName)
	assert.Equal(t, "user", me.Role)

	res = testutil.Do(t, h, http.MethodGet, "/api/users/me", pair.Refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code, "refresh tokens are not bearer credentials")

	res = testutil.Do(t, h, http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh": pair.Refresh})
	require.Equal(t, http.StatusOK, res.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	testutil.NewDB(t)
	h := newHandler(t)

	for _, path := range []string{"/api/orders", "/api/payments", "/api/affiliates", "/api/dashboard/stats"} {
		res := testutil.Do(t, h, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code, path)
	}
}

func TestProductOwnershipOverHTTP(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner", models.RoleSeller)
	rival := testutil.CreateUser(t, db, "rival", models.RoleSeller)
	admin := testutil.CreateUser(t, db, "admin", models.RoleAdmin)
	buyer := testutil.CreateUser(t, db, "buyer", models.RoleUser)
	h := newHandler(t)

	body := map[string]interface{}{
		"name": "Lamp", "category": "home", "brand": "Acme", "price": "15.50", "stock_quantity": 3,
	}

	res := testutil.Do(t, h, http.MethodPost, "/api/products", testutil.Token(t, buyer), body)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = testutil.Do(t, h, http.MethodPost, "/api/products", testutil.Token(t, owner), map[string]interface{}{
		"name": "Lamp", "category": "home", "brand": "Acme",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Errors, "price")

	res = testutil.Do(t, h, http.MethodPost, "/api/products", testutil.Token(t, owner), body)
	require.Equal(t, http.StatusCreated, res.Code, string(res.Body))
	var created struct {
		ID     string `json:"id"`
		Seller uint   `json:"seller"`
		Price  string `json:"price"`
	}
	res.Decode(t, &created)
	assert.Equal(t, owner.ID, created.Seller)
	assert.Equal(t, "15.50", created.Price)

	path := "/api/products/" + created.ID
	res = testutil.Do(t, h, http.MethodPatch, path, testutil.Token(t, rival), map[string]string{"name": "Mine now"})
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = testutil.Do(t, h, http.MethodPatch, path, testutil.Token(t, admin), map[string]string{"name": "Brass Lamp"})
	assert.Equal(t, http.StatusOK, res.Code)

	res = testutil.Do(t, h, http.MethodGet, path+"/", "", nil)
	require.Equal(t, http.StatusOK, res.Code, "trailing slash is accepted")
	var shown struct {
		Name string `json:"name"`
	}
	res.Decode(t, &shown)
	assert.Equal(t, "Brass Lamp", shown.Name)

	res = testutil.Do(t, h, http.MethodGet, "/api/products/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = testutil.Do(t, h, http.MethodDelete, path, testutil.Token(t, owner), nil)
	assert.Equal(t, http.StatusNoContent, res.Code)
}

func TestProductListingPagination(t *testing.T) {
	db := testutil.NewDB(t)
	seller := testutil.CreateUser(t, db, "seller", models.RoleSeller)
	testutil.CreateProduct(t, db, seller, "A", "1.00")
	testutil.CreateProduct(t, db, seller, "B", "2.00")
	testutil.CreateProduct(t, db, seller, "C", "3.00")
	h := newHandler(t)

	res := testutil.Do(t, h, http.MethodGet, "/api/products?ordering=price", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var all []struct {
		Name string `json:"name"`
	}
	res.Decode(t, &all)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].Name)

	res = testutil.Do(t, h, http.MethodGet, "/api/products?ordering=-price&page=1&page_size=2", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var page struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	res.Decode(t, &page)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "C", page.Items[0].Name)

	res = testutil.Do(t, h, http.MethodGet, "/api/products?ordering=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

type orderJSON struct {
	ID           string `json:"id"`
	User         uint   `json:"user"`
	CustomerName string `json:"customer_name"`
	TotalAmount  string `json:"total_amount"`
	Items        []struct {
		Quantity        int    `json:"quantity"`
		PriceAtPurchase string `json:"price_at_purchase"`
	} `json:"items"`
}

func TestOrdersOverHTTP(t *testing.T) {
	db := testutil.NewDB(t)
	seller := testutil.CreateUser(t, db, "seller", models.RoleSeller)
	alice := testutil.CreateUser(t, db, "alice", models.RoleUser)
	bob := testutil.CreateUser(t, db, "bob", models.RoleUser)
	admin := testutil.CreateUser(t, db, "admin", models.RoleAdmin)
	mug := testutil.CreateProduct(t, db, seller, "Mug", "12.00")
	h := newHandler(t)

	res := testutil.Do(t, h, http.MethodPost, "/api/orders", testutil.Token(t, alice), map[string]interface{}{"items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = testutil.Do(t, h, http.MethodPost, "/api/orders", testutil.Token(t, alice), map[string]interface{}{
		"items": []map[string]interface{}{{"id": "00000000-0000-0000-0000-000000000001", "price": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = testutil.Do(t, h, http.MethodPost, "/api/orders/", testutil.Token(t, alice), map[string]interface{}{
		"items":        []map[string]interface{}{{"productId": mug.ID.String(), "quantity": 2, "price": 9.5}},
		"customerName": "Alice A",
	})
	require.Equal(t, http.StatusCreated, res.Code, string(res.Body))
	var placed orderJSON
	res.Decode(t, &placed)
	assert.Equal(t, alice.ID, placed.User)
	assert.Equal(t, "Alice A", placed.CustomerName)
	assert.Equal(t, "19.00", placed.TotalAmount)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, "9.50", placed.Items[0].PriceAtPurchase)

	res = testutil.Do(t, h, http.MethodGet, "/api/orders", testutil.Token(t, bob), nil)
	require.Equal(t, http.StatusOK, res.Code)
	var bobs []orderJSON
	res.Decode(t, &bobs)
	assert.Empty(t, bobs)

	res = testutil.Do(t, h, http.MethodGet, "/api/orders/"+placed.ID, testutil.Token(t, bob), nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = testutil.Do(t, h, http.MethodGet, "/api/orders", testutil.Token(t, admin), nil)
	require.Equal(t, http.StatusOK, res.Code)
	var all []orderJSON
	res.Decode(t, &all)
	assert.Len(t, all, 1)

	res = testutil.Do(t, h, http.MethodPatch, "/api/orders/"+placed.ID+"/status", testutil.Token(t, alice), map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = testutil.Do(t, h, http.MethodPatch, "/api/orders/"+placed.ID+"/status", testutil.Token(t, admin), map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusOK, res.Code)

	res = testutil.Do(t, h, http.MethodPost, "/api/payments", testutil.Token(t, alice), map[string]string{
		"order": placed.ID, "payment_method": "card",
	})
	require.Equal(t, http.StatusCreated, res.Code, string(res.Body))
	var pay struct {
		ID            uint   `json:"id"`
		Amount        string `json:"amount"`
		TransactionID string `json:"transaction_id"`
	}
	res.Decode(t, &pay)

	res = testutil.Do(t, h, http.MethodPost, "/api/payments", testutil.Token(t, alice), map[string]string{
		"order": placed.ID, "payment_method": "card",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	payPath := "/api/payments/" + strconv.FormatUint(uint64(pay.ID), 10)
	res = testutil.Do(t, h, http.MethodPatch, payPath, testutil.Token(t, alice), map[string]string{"transaction_id": "tx-9"})
	require.Equal(t, http.StatusOK, res.Code, string(res.Body))
	res.Decode(t, &pay)
	assert.Equal(t, "19.00", pay.Amount, "PATCH keeps the amount")

	res = testutil.Do(t, h, http.MethodPut, payPath, testutil.Token(t, alice), map[string]string{"payment_method": "cash"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Errors, "amount")

	res = testutil.Do(t, h, http.MethodPut, payPath, testutil.Token(t, alice), map[string]string{"amount": "5.00", "payment_method": "cash"})
	require.Equal(t, http.StatusOK, res.Code, string(res.Body))
	res.Decode(t, &pay)
	assert.Equal(t, "5.00", pay.Amount)
	assert.Empty(t, pay.TransactionID, "PUT clears fields it does not carry")
}

func TestAffiliatesAndDashboard(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", models.RoleUser)
	bob := testutil.CreateUser(t, db, "bob", models.RoleUser)
	admin := testutil.CreateUser(t, db, "admin", models.RoleAdmin)
	h := newHandler(t)

	for _, u := range []models.User{alice, bob} {
		res := testutil.Do(t, h, http.MethodPost, "/api/affiliates", testutil.Token(t, u), nil)
		require.Equal(t, http.StatusCreated, res.Code, string(res.Body))
	}
	res := testutil.Do(t, h, http.MethodPost, "/api/affiliates", testutil.Token(t, alice), nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	var list []struct {
		User uint `json:"user"`
	}
	res = testutil.Do(t, h, http.MethodGet, "/api/affiliates", testutil.Token(t, alice), nil)
	res.Decode(t, &list)
	require.Len(t, list, 1)
	assert.Equal(t, alice.ID, list[0].User)

	res = testutil.Do(t, h, http.MethodGet, "/api/affiliates", testutil.Token(t, admin), nil)
	res.Decode(t, &list)
	assert.Len(t, list, 2)

	res = testutil.Do(t, h, http.MethodGet, "/api/dashboard/stats", testutil.Token(t, alice), nil)
	require.Equal(t, http.StatusOK, res.Code)
	var stats map[string]int64
	res.Decode(t, &stats)
	assert.Equal(t, map[string]int64{"totalRevenue": 0, "totalOrders": 0, "totalProducts": 0, "totalUsers": 3}, stats)
}

func TestPagesOverHTTP(t *testing.T) {
	db := testutil.NewDB(t)
	admin := testutil.CreateUser(t, db, "admin", models.RoleAdmin)
	buyer := testutil.CreateUser(t, db, "buyer", models.RoleUser)
	h := newHandler(t)

	res := testutil.Do(t, h, http.MethodGet, "/api/pages/about", "", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = testutil.Do(t, h, http.MethodPost, "/api/pages/about", testutil.Token(t, buyer), map[string]string{"title": "About"})
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = testutil.Do(t, h, http.MethodPost, "/api/pages/about", testutil.Token(t, admin), map[string]string{"title": "About", "content": "hi"})
	assert.Equal(t, http.StatusCreated, res.Code)

	res = testutil.Do(t, h, http.MethodPost, "/api/pages/about", testutil.Token(t, admin), map[string]string{"title": "About", "content": "hello"})
	assert.Equal(t, http.StatusOK, res.Code)

	res = testutil.Do(t, h, http.MethodGet, "/api/pages/about", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var page struct {
		Content string `json:"content"`
	}
	res.Decode(t, &page)
	assert.Equal(t, "hello", page.Content)
}

func TestDisabledAccountLosesAccess(t *testing.T) {
	db := testutil.NewDB(t)
	admin := testutil.CreateUser(t, db, "admin", models.RoleAdmin)
	buyer := testutil.CreateUser(t, db, "buyer", models.RoleUser)
	h := newHandler(t)
	token := testutil.Token(t, buyer)

	res := testutil.Do(t, h, http.MethodPut, "/api/admin/users/"+strconv.FormatUint(uint64(buyer.ID), 10)+"/status", testutil.Token(t, admin), map[string]bool{"is_active": false})
	require.Equal(t, http.StatusOK, res.Code, string(res.Body))

	res = testutil.Do(t, h, http.MethodGet, "/api/orders", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestGraphQLCatalogue(t *testing.T) {
	db := testutil.NewDB(t)
	seller := testutil.CreateUser(t, db, "seller", models.RoleSeller)
	testutil.CreateProduct(t, db, seller, "Mug", "12.00")
	testutil.CreateProduct(t, db, seller, "Teapot", "40.00")
	h := newHandler(t)

	body := `{"query":"{ products(ordering: \"-price\") { name price } }"}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Data struct {
			Products []struct {
				Name  string `json:"name"`
				Price string `json:"price"`
			} `json:"products"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Data.Products, 2)
	assert.Equal(t, "Teapot", out.Data.Products[0].Name)
	assert.Equal(t, "40.00", out.Data.Products[0].Price)
}

func TestRoutesAreListed(t *testing.T) {
	k, err := kernel.NewHTTPKernel()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, ri := range k.Routes() {
		names[ri.Name] = true
	}
	for _, want := range []string{"health", "graphql", "orders.store", "products.destroy", "dashboard.stats"} {
		assert.True(t, names[want], want)
	}
}
