// Package listeners subscribes the storefront's reactions to domain events.
package listeners

import (
	"context"
	"sync"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

var once sync.Once

// Register subscribes every listener. Repeated calls are no-ops.
func Register() {
	once.Do(func() {
		event.Listen(services.EventOrderPlaced, countOrder)
		event.Listen(services.EventUserRegistered, countRegistration)
	})
}

func countOrder(ctx context.Context, payload interface{}) {
	o, ok := payload.(models.Order)
	if !ok {
		return
	}
	metrics.OrdersPlaced.Inc()
	metrics.OrderItemsPlaced.Add(float64(len(o.Items)))
}

func countRegistration(ctx context.Context, payload interface{}) {
	u, ok := payload.(models.User)
	if !ok {
		return
	}
	metrics.UsersRegistered.WithLabelValues(u.Role.String()).Inc()
	logger.WithCtx(ctx).Info("user registered", "user_id", u.ID, "role", u.Role.String())
}
