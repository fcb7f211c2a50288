package models

import (
	"fmt"
	"strings"
)

// Role is the account role stored on every user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
	RoleUser   Role = "user"
)

// Roles lists every valid role.
func Roles() []Role { return []Role{RoleAdmin, RoleSeller, RoleUser} }

// ParseRole accepts the canonical lower-case names, ignoring case and
// surrounding spaces.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleUser:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case OrderPending, OrderShipped, OrderDelivered, OrderCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Principal is the authenticated user a service call acts on behalf of.
type Principal struct {
	UserID uint
	Role   Role
}

// PrincipalOf builds the principal for a loaded user.
func PrincipalOf(u User) Principal {
	return Principal{UserID: u.ID, Role: u.Role}
}
