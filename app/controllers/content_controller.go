package controllers

import (
	"github.com/shashiranjanraj/storefront/app/resources"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

type PageController struct {
	service *services.PageService
}

func NewPageController() *PageController {
	return &PageController{service: services.NewPageService()}
}

// Show handles GET /api/pages/{slug}. Public.
func (p *PageController) Show(c *ctx.Context) {
	page, err := p.service.Get(c.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.NewPage(page))
}

// Upsert handles POST /api/pages/{slug}. Admin only.
func (p *PageController) Upsert(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	var in services.PageInput
	if !c.BindJSON(&in) {
		return
	}
	page, created, err := p.service.Upsert(c.Context(), who, c.Param("slug"), in)
	if err != nil {
		fail(c, err)
		return
	}
	if created {
		c.Created(resources.NewPage(page))
		return
	}
	c.Success(resources.NewPage(page))
}

type AffiliateController struct {
	service *services.AffiliateService
}

func NewAffiliateController() *AffiliateController {
	return &AffiliateController{service: services.NewAffiliateService()}
}

// Index handles GET /api/affiliates: all rows for admins, own row otherwise.
func (a *AffiliateController) Index(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	rows, err := a.service.List(c.Context(), who)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.Affiliates(rows))
}

// Store handles POST /api/affiliates for the caller.
func (a *AffiliateController) Store(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	row, err := a.service.Join(c.Context(), who)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resources.NewAffiliate(row))
}
