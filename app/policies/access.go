// Package policies decides which rows a principal may see or change.
//
// Every decision switches over the full set of roles. A role this package
// does not know about is denied.
package policies

import (
	"errors"

	"github.com/shashiranjanraj/storefront/app/models"
	"gorm.io/gorm"
)

// ErrForbidden means the principal may not perform the action.
var ErrForbidden = errors.New("forbidden")

// OwnedScope restricts a query to rows whose ownerColumn equals the
// principal, unless the principal is an admin.
func OwnedScope(p models.Principal, ownerColumn string) (func(*gorm.DB) *gorm.DB, error) {
	switch p.Role {
	case models.RoleAdmin:
		return func(db *gorm.DB) *gorm.DB { return db }, nil
	case models.RoleSeller, models.RoleUser:
		id := p.UserID
		return func(db *gorm.DB) *gorm.DB { return db.Where(ownerColumn+" = ?", id) }, nil
	default:
		return nil, ErrForbidden
	}
}

// CanAccessOwned reports whether p may read or change a row owned by ownerID.
func CanAccessOwned(p models.Principal, ownerID uint) bool {
	switch p.Role {
	case models.RoleAdmin:
		return true
	case models.RoleSeller, models.RoleUser:
		return p.UserID == ownerID
	default:
		return false
	}
}

// CanCreateProduct: sellers list their own goods, admins list anything.
func CanCreateProduct(p models.Principal) bool {
	switch p.Role {
	case models.RoleAdmin, models.RoleSeller:
		return true
	case models.RoleUser:
		return false
	default:
		return false
	}
}

// CanModifyProduct allows admins and the seller who owns the product.
func CanModifyProduct(p models.Principal, product models.Product) bool {
	switch p.Role {
	case models.RoleAdmin:
		return true
	case models.RoleSeller:
		return product.SellerID == p.UserID
	case models.RoleUser:
		return false
	default:
		return false
	}
}

// IsAdmin is the gate for admin-only mutations.
func IsAdmin(p models.Principal) bool {
	switch p.Role {
	case models.RoleAdmin:
		return true
	case models.RoleSeller, models.RoleUser:
		return false
	default:
		return false
	}
}
