package controllers

import (
	"github.com/shashiranjanraj/storefront/app/resources"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController() *OrderController {
	return &OrderController{service: services.NewOrderService()}
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Index handles GET /api/orders: everything for admins, own orders otherwise.
func (o *OrderController) Index(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	orders, err := o.service.List(c.Context(), who)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.Orders(orders))
}

// Show handles GET /api/orders/{id}.
func (o *OrderController) Show(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	order, err := o.service.Get(c.Context(), who, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.NewOrder(order))
}

// Store handles POST /api/orders.
func (o *OrderController) Store(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	var in services.PlaceOrderInput
	if !c.BindJSON(&in) {
		return
	}
	order, err := o.service.Place(c.Context(), who, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resources.NewOrder(order))
}

// UpdateStatus handles PATCH /api/orders/{id}/status.
func (o *OrderController) UpdateStatus(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var in orderStatusRequest
	if !c.BindJSON(&in) {
		return
	}
	order, err := o.service.UpdateStatus(c.Context(), who, id, in.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.NewOrder(order))
}
