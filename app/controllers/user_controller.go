package controllers

import (
	"github.com/shashiranjanraj/storefront/app/resources"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

type UserController struct {
	service *services.UserService
}

func NewUserController() *UserController {
	return &UserController{service: services.NewUserService()}
}

type userStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func (u *UserController) Index(c *ctx.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	list, page, err := u.service.List(c.Context(), c.QueryInt("page", 1), c.QueryInt("page_size", 20))
	if err != nil {
		fail(c, err)
		return
	}
	c.Paginated(resources.Users(list), page)
}

func (u *UserController) Show(c *ctx.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	user, err := u.service.Get(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.NewUser(user))
}

// Me handles GET /api/users/me.
func (u *UserController) Me(c *ctx.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.Success(resources.NewUser(user))
}

// SetStatus handles PUT /api/admin/users/{id}/status.
func (u *UserController) SetStatus(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in userStatusRequest
	if !c.BindJSON(&in) {
		return
	}
	user, err := u.service.SetActive(c.Context(), who, id, *in.IsActive)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.NewUser(user))
}

type DashboardController struct {
	service *services.DashboardService
}

func NewDashboardController() *DashboardController {
	return &DashboardController{service: services.NewDashboardService()}
}

// Stats handles GET /api/dashboard/stats.
func (d *DashboardController) Stats(c *ctx.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	st, err := d.service.Stats(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(st)
}
