package controllers

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/resources"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController() *ProductController {
	return &ProductController{service: services.NewProductService()}
}

// filterFromQuery reads the listing filters. Malformed values are reported
// per field.
func filterFromQuery(c *ctx.Context) (repositories.ProductFilter, map[string]string) {
	errs := map[string]string{}
	f := repositories.ProductFilter{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}

	if raw := c.Query("seller"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			errs["seller"] = "A valid integer is required."
		}
		f.SellerID = uint(id)
	}

	boolParam := func(key string) *bool {
		raw := c.Query(key)
		if raw == "" {
			return nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			errs[key] = "Must be a valid boolean."
			return nil
		}
		return &b
	}
	f.Featured = boolParam("is_featured")
	f.Popular = boolParam("is_popular")

	decimalParam := func(key string) *decimal.Decimal {
		raw := c.Query(key)
		if raw == "" {
			return nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			errs[key] = "A valid number is required."
			return nil
		}
		return &d
	}
	f.MinPrice = decimalParam("min_price")
	f.MaxPrice = decimalParam("max_price")

	return f, errs
}

// Index handles GET /api/products. Passing page or page_size switches to a
// paginated body.
func (p *ProductController) Index(c *ctx.Context) {
	f, errs := filterFromQuery(c)
	if len(errs) > 0 {
		c.ValidationError(errs)
		return
	}

	if c.Query("page") != "" || c.Query("page_size") != "" {
		items, page, err := p.service.Paginate(c.Context(), f, c.QueryInt("page", 1), c.QueryInt("page_size", 20))
		if err != nil {
			fail(c, err)
			return
		}
		c.Paginated(resources.Products(items), page)
		return
	}

	items, err := p.service.List(c.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.Products(items))
}

// Show handles GET /api/products/{id}.
func (p *ProductController) Show(c *ctx.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	product, err := p.service.Get(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.NewProduct(product))
}

// Store handles POST /api/products.
func (p *ProductController) Store(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}
	product, err := p.service.Create(c.Context(), who, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resources.NewProduct(product))
}

// Replace handles PUT /api/products/{id}.
func (p *ProductController) Replace(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}
	product, err := p.service.Replace(c.Context(), who, id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.NewProduct(product))
}

// Update handles PATCH /api/products/{id}.
func (p *ProductController) Update(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var in services.ProductPatch
	if !c.BindJSON(&in) {
		return
	}
	product, err := p.service.Update(c.Context(), who, id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.NewProduct(product))
}

// Destroy handles DELETE /api/products/{id}.
func (p *ProductController) Destroy(c *ctx.Context) {
	who, ok := principal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := p.service.Delete(c.Context(), who, id); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}
