package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, in := range []string{"admin", "Seller", " user "} {
		r, err := ParseRole(in)
		require.NoError(t, err, in)
		assert.True(t, r.Valid())
	}

	for _, in := range []string{"", "root", "superuser"} {
		_, err := ParseRole(in)
		assert.Error(t, err, in)
	}
}

func TestParseOrderStatus(t *testing.T) {
	st, err := ParseOrderStatus("Shipped")
	require.NoError(t, err)
	assert.Equal(t, OrderShipped, st)

	_, err = ParseOrderStatus("lost")
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Jane Doe", User{Username: "jd", FirstName: "Jane", LastName: "Doe"}.DisplayName())
	assert.Equal(t, "Jane", User{Username: "jd", FirstName: "Jane"}.DisplayName())
	assert.Equal(t, "jd", User{Username: "jd"}.DisplayName())
}

func TestSubtotal(t *testing.T) {
	item := OrderItem{Quantity: 3, PriceAtPurchase: decimal.RequireFromString("19.99")}
	assert.Equal(t, "59.97", item.Subtotal().StringFixed(2))
}
