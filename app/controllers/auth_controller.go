package controllers

import (
	"github.com/shashiranjanraj/storefront/app/resources"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// Register handles POST /api/auth/register.
func (a *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if !c.BindJSON(&in) {
		return
	}
	user, err := a.service.Register(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resources.NewUser(user))
}

// Login handles POST /api/auth/login.
func (a *AuthController) Login(c *ctx.Context) {
	var in loginRequest
	if !c.BindJSON(&in) {
		return
	}
	pair, err := a.service.Login(c.Context(), in.Username, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(pair)
}

// Refresh handles POST /api/auth/refresh.
func (a *AuthController) Refresh(c *ctx.Context) {
	var in refreshRequest
	if !c.BindJSON(&in) {
		return
	}
	access, err := a.service.Refresh(c.Context(), in.Refresh)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"access": access})
}
