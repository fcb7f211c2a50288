package controllers

import (
	"github.com/shashiranjanraj/storefront/app/resources"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

type PaymentController struct {
	service *services.PaymentService
}

func NewPaymentController() *PaymentController {
	return &PaymentController{service: services.NewPaymentService()}
}

func (p *PaymentController) Index(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	payments, err := p.service.List(c.Context(), who)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.Payments(payments))
}

func (p *PaymentController) Show(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	pay, err := p.service.Get(c.Context(), who, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.NewPayment(pay))
}

func (p *PaymentController) Store(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	var in services.PaymentInput
	if !c.BindJSON(&in) {
		return
	}
	pay, err := p.service.Create(c.Context(), who, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resources.NewPayment(pay))
}

// Replace handles PUT; every editable field is overwritten.
func (p *PaymentController) Replace(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in services.PaymentReplace
	if !c.BindJSON(&in) {
		return
	}
	pay, err := p.service.Replace(c.Context(), who, id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.NewPayment(pay))
}

// Update handles PATCH; absent fields are kept.
func (p *PaymentController) Update(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in services.PaymentPatch
	if !c.BindJSON(&in) {
		return
	}
	pay, err := p.service.Update(c.Context(), who, id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.NewPayment(pay))
}

func (p *PaymentController) Destroy(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := p.service.Delete(c.Context(), who, id); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}
