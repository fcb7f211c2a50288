package policies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
)

func TestOwnedScopeRejectsUnknownRole(t *testing.T) {
	_, err := OwnedScope(models.Principal{UserID: 1, Role: "root"}, "user_id")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOwnedScopeKnownRoles(t *testing.T) {
	for _, r := range models.Roles() {
		scope, err := OwnedScope(models.Principal{UserID: 1, Role: r}, "user_id")
		require.NoError(t, err, r)
		assert.NotNil(t, scope)
	}
}

func TestCanAccessOwned(t *testing.T) {
	admin := models.Principal{UserID: 1, Role: models.RoleAdmin}
	seller := models.Principal{UserID: 2, Role: models.RoleSeller}
	user := models.Principal{UserID: 3, Role: models.RoleUser}
	ghost := models.Principal{UserID: 3, Role: "ghost"}

	assert.True(t, CanAccessOwned(admin, 3))
	assert.False(t, CanAccessOwned(seller, 3))
	assert.True(t, CanAccessOwned(user, 3))
	assert.False(t, CanAccessOwned(ghost, 3))
}

func TestProductRules(t *testing.T) {
	product := models.Product{SellerID: 2}

	assert.True(t, CanCreateProduct(models.Principal{Role: models.RoleSeller}))
	assert.False(t, CanCreateProduct(models.Principal{Role: models.RoleUser}))

	assert.True(t, CanModifyProduct(models.Principal{UserID: 1, Role: models.RoleAdmin}, product))
	assert.True(t, CanModifyProduct(models.Principal{UserID: 2, Role: models.RoleSeller}, product))
	assert.False(t, CanModifyProduct(models.Principal{UserID: 9, Role: models.RoleSeller}, product))
	assert.False(t, CanModifyProduct(models.Principal{UserID: 2, Role: models.RoleUser}, product))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(models.Principal{Role: models.RoleAdmin}))
	assert.False(t, IsAdmin(models.Principal{Role: models.RoleSeller}))
	assert.False(t, IsAdmin(models.Principal{Role: ""}))
}
