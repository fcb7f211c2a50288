package listeners

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

func TestOrderPlacedUpdatesCounters(t *testing.T) {
	Register()

	orders := testutil.ToFloat64(metrics.OrdersPlaced)
	items := testutil.ToFloat64(metrics.OrderItemsPlaced)

	event.Fire(context.Background(), services.EventOrderPlaced, models.Order{Items: make([]models.OrderItem, 3)})

	assert.Equal(t, orders+1, testutil.ToFloat64(metrics.OrdersPlaced))
	assert.Equal(t, items+3, testutil.ToFloat64(metrics.OrderItemsPlaced))
}

func TestUserRegisteredCountsByRole(t *testing.T) {
	Register()

	c := metrics.UsersRegistered.WithLabelValues("seller")
	before := testutil.ToFloat64(c)

	event.Fire(context.Background(), services.EventUserRegistered, models.User{ID: 1, Role: models.RoleSeller})
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
