package routes

import (
	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/rbac"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// RegisterAPI mounts every /api route. Trailing slashes are stripped by the
// kernel, so "/api/products/" reaches "/api/products".
func RegisterAPI(r *router.Router) {
	authC := controllers.NewAuthController()
	productC := controllers.NewProductController()
	orderC := controllers.NewOrderController()
	paymentC := controllers.NewPaymentController()
	pageC := controllers.NewPageController()
	affiliateC := controllers.NewAffiliateController()
	userC := controllers.NewUserController()
	dashboardC := controllers.NewDashboardController()

	api := r.Group("/api")

	api.Post("/auth/register", "auth.register", ctx.Wrap(authC.Register))
	api.Post("/auth/login", "auth.login", ctx.Wrap(authC.Login))
	api.Post("/auth/refresh", "auth.refresh", ctx.Wrap(authC.Refresh))

	api.Get("/products", "products.index", ctx.Wrap(productC.Index))
	api.Get("/products/{id}", "products.show", ctx.Wrap(productC.Show))
	api.Get("/pages/{slug}", "pages.show", ctx.Wrap(pageC.Show))

	protected := api.Group("", middleware.AuthMiddleware)

	sellers := protected.Group("", rbac.HasRole(models.RoleSeller.String(), models.RoleAdmin.String()))
	sellers.Post("/products", "products.store", ctx.Wrap(productC.Store))
	sellers.Put("/products/{id}", "products.replace", ctx.Wrap(productC.Replace))
	sellers.Patch("/products/{id}", "products.update", ctx.Wrap(productC.Update))
	sellers.Delete("/products/{id}", "products.destroy", ctx.Wrap(productC.Destroy))

	protected.Get("/orders", "orders.index", ctx.Wrap(orderC.Index))
	protected.Post("/orders", "orders.store", ctx.Wrap(orderC.Store))
	protected.Get("/orders/{id}", "orders.show", ctx.Wrap(orderC.Show))

	protected.Get("/payments", "payments.index", ctx.Wrap(paymentC.Index))
	protected.Post("/payments", "payments.store", ctx.Wrap(paymentC.Store))
	protected.Get("/payments/{id}", "payments.show", ctx.Wrap(paymentC.Show))
	protected.Put("/payments/{id}", "payments.replace", ctx.Wrap(paymentC.Replace))
	protected.Patch("/payments/{id}", "payments.update", ctx.Wrap(paymentC.Update))
	protected.Delete("/payments/{id}", "payments.destroy", ctx.Wrap(paymentC.Destroy))

	protected.Get("/affiliates", "affiliates.index", ctx.Wrap(affiliateC.Index))
	protected.Post("/affiliates", "affiliates.store", ctx.Wrap(affiliateC.Store))

	protected.Get("/users", "users.index", ctx.Wrap(userC.Index))
	protected.Get("/users/me", "users.me", ctx.Wrap(userC.Me))
	protected.Get("/users/{id}", "users.show", ctx.Wrap(userC.Show))

	protected.Get("/dashboard/stats", "dashboard.stats", ctx.Wrap(dashboardC.Stats))

	admin := protected.Group("", rbac.HasRole(models.RoleAdmin.String()))
	admin.Post("/pages/{slug}", "pages.upsert", ctx.Wrap(pageC.Upsert))
	admin.Patch("/orders/{id}/status", "orders.status", ctx.Wrap(orderC.UpdateStatus))
	admin.Put("/admin/users/{id}/status", "admin.users.status", ctx.Wrap(userC.SetStatus))
}
