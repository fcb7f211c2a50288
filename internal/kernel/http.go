// Package kernel assembles the storefront's HTTP handler: global
// middleware, operational endpoints and the API routes.
package kernel

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	appgraphql "github.com/shashiranjanraj/storefront/app/graphql"
	"github.com/shashiranjanraj/storefront/app/listeners"
	"github.com/shashiranjanraj/storefront/app/routes"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/graphql"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

type HTTPKernel struct {
	router  *router.Router
	limiter *middleware.Limiter
}

// NewHTTPKernel builds the router. It does not start any goroutines; call
// Run to sweep the rate limiter.
func NewHTTPKernel() (*HTTPKernel, error) {
	listeners.Register()

	k := &HTTPKernel{
		router:  router.New(),
		limiter: middleware.NewLimiter(config.RateLimitPerMinute(), time.Minute),
	}

	if err := k.limiter.TrustProxies(config.TrustedProxies()...); err != nil {
		return nil, err
	}

	r := k.router
	r.Use(chimw.StripSlashes)
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(k.limiter.Middleware)

	r.Get("/health", "health", health)
	r.Get("/metrics", "metrics", metrics.Handler())

	schema, err := appgraphql.NewSchema(services.NewProductService())
	if err != nil {
		return nil, err
	}
	r.Handle("/graphql", "graphql", graphql.Handler(schema))

	routes.RegisterAPI(r)
	return k, nil
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

func (k *HTTPKernel) Routes() []router.RouteInfo { return k.router.Routes() }

// Run sweeps expired rate-limit buckets until ctx is done.
func (k *HTTPKernel) Run(ctx context.Context) { k.limiter.RunSweeper(ctx) }

// health reports liveness plus a database ping.
func health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"app": "ok", "database": "ok"}
	code := http.StatusOK

	if database.DB == nil {
		status["database"] = "unavailable"
		code = http.StatusServiceUnavailable
	} else if sqlDB, err := database.DB.DB(); err != nil || sqlDB.PingContext(r.Context()) != nil {
		status["database"] = "unavailable"
		code = http.StatusServiceUnavailable
	}

	response.JSON(w, code, status)
}
