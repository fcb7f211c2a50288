// Package services holds the business operations behind the HTTP API. Every
// operation that depends on who is asking takes a models.Principal.
package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/policies"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = policies.ErrForbidden
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrUnknownProduct     = errors.New("order references a product that does not exist")
	ErrDuplicateUsername  = errors.New("a user with that username already exists")
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	ErrInactiveAccount    = errors.New("account is disabled")
	ErrAffiliateExists    = errors.New("affiliate account already exists")
	ErrPaymentExists      = errors.New("order already has a payment")
)

// ValidationError carries field-level problems found by a service.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// lostInsertRace reports whether insertErr came from a concurrent request
// creating the same unique row first. Drivers that translate constraint
// errors answer directly; the rest are settled by asking exists again.
func lostInsertRace(ctx context.Context, insertErr error, exists func(context.Context) (bool, error)) bool {
	if errors.Is(insertErr, gorm.ErrDuplicatedKey) {
		return true
	}
	found, err := exists(ctx)
	return err == nil && found
}

func unscoped(db *gorm.DB) *gorm.DB { return db }
