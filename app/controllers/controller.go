// Package controllers adapts HTTP requests to service calls and maps
// service errors onto status codes.
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

var users = repositories.NewUserRepository()

// currentUser loads the account behind the bearer token. Deleted or
// disabled accounts get a 401 even while their token is still valid.
func currentUser(c *ctx.Context) (models.User, bool) {
	u, err := users.FindByID(c.Context(), c.UserID())
	if err != nil {
		if orm.IsNotFound(err) {
			c.Unauthorized("User not found")
			return models.User{}, false
		}
		fail(c, err)
		return models.User{}, false
	}
	if !u.IsActive {
		c.Unauthorized("User is inactive")
		return models.User{}, false
	}
	return u, true
}

func principal(c *ctx.Context) (models.Principal, bool) {
	u, ok := currentUser(c)
	if !ok {
		return models.Principal{}, false
	}
	return models.PrincipalOf(u), true
}

var badRequest = []error{
	services.ErrEmptyOrder,
	services.ErrUnknownProduct,
	services.ErrDuplicateUsername,
	services.ErrAffiliateExists,
	services.ErrPaymentExists,
}

// fail writes the response for a service error.
func fail(c *ctx.Context, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		c.ValidationError(verr.Fields)
		return
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			c.Error(http.StatusBadRequest, fromSentinel(err, target))
			return
		}
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Unauthorized(services.ErrInvalidCredentials.Error())
	case errors.Is(err, services.ErrInactiveAccount):
		c.Forbidden(services.ErrInactiveAccount.Error())
	case errors.Is(err, services.ErrForbidden):
		c.Forbidden("You do not have permission to perform this action.")
	case errors.Is(err, services.ErrNotFound):
		c.NotFound()
	default:
		logger.WithCtx(c.Context()).Error("request failed", "path", c.R.URL.Path, "error", err)
		c.Error(http.StatusInternalServerError, "Internal Server Error")
	}
}

// fromSentinel trims the operation prefixes ("place order: ") off err while
// keeping any detail appended after the sentinel.
func fromSentinel(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()); i >= 0 {
		return msg[i:]
	}
	return sentinel.Error()
}

func uuidParam(c *ctx.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.NotFound()
		return uuid.Nil, false
	}
	return id, true
}

func uintParam(c *ctx.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		c.NotFound()
		return 0, false
	}
	return uint(n), true
}
