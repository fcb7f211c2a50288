package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/policies"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

const productCacheTTL = 5 * time.Minute

func productCacheKey(id uuid.UUID) string { return "products:" + id.String() }

// ProductInput is the full product payload used by create and PUT.
type ProductInput struct {
	Name          string           `json:"name"           validate:"required,max=255"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price"          validate:"required,gte=0"`
	StockQuantity int              `json:"stock_quantity" validate:"gte=0"`
	Category      string           `json:"category"       validate:"required,max=100"`
	Brand         string           `json:"brand"          validate:"required,max=100"`
	ImageURL      string           `json:"image_url"      validate:"nullable,url,max=500"`
	VideoURL      string           `json:"video_url"      validate:"nullable,url,max=500"`
	IsFeatured    bool             `json:"is_featured"`
	IsPopular     bool             `json:"is_popular"`
}

// ProductPatch is the PATCH payload; nil fields are left unchanged.
type ProductPatch struct {
	Name          *string          `json:"name"           validate:"nullable,min=1,max=255"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"          validate:"nullable,gte=0"`
	StockQuantity *int             `json:"stock_quantity" validate:"nullable,gte=0"`
	Category      *string          `json:"category"       validate:"nullable,min=1,max=100"`
	Brand         *string          `json:"brand"          validate:"nullable,min=1,max=100"`
	ImageURL      *string          `json:"image_url"      validate:"nullable,url,max=500"`
	VideoURL      *string          `json:"video_url"      validate:"nullable,url,max=500"`
	IsFeatured    *bool            `json:"is_featured"`
	IsPopular     *bool            `json:"is_popular"`
}

// check runs the field rules again for callers that skipped the HTTP binder.
func (in ProductInput) check() error {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func (in ProductInput) patch() ProductPatch {
	return ProductPatch{
		Name:          &in.Name,
		Description:   &in.Description,
		Price:         in.Price,
		StockQuantity: &in.StockQuantity,
		Category:      &in.Category,
		Brand:         &in.Brand,
		ImageURL:      &in.ImageURL,
		VideoURL:      &in.VideoURL,
		IsFeatured:    &in.IsFeatured,
		IsPopular:     &in.IsPopular,
	}
}

func (pt ProductPatch) apply(p *models.Product) {
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	if pt.Price != nil {
		p.Price = pt.Price.Round(2)
	}
	if pt.StockQuantity != nil {
		p.StockQuantity = *pt.StockQuantity
	}
	if pt.Category != nil {
		p.Category = *pt.Category
	}
	if pt.Brand != nil {
		p.Brand = *pt.Brand
	}
	if pt.ImageURL != nil {
		p.ImageURL = *pt.ImageURL
	}
	if pt.VideoURL != nil {
		p.VideoURL = *pt.VideoURL
	}
	if pt.IsFeatured != nil {
		p.IsFeatured = *pt.IsFeatured
	}
	if pt.IsPopular != nil {
		p.IsPopular = *pt.IsPopular
	}
}

type ProductService struct {
	products *repositories.ProductRepository
}

func NewProductService() *ProductService {
	return &ProductService{products: repositories.NewProductRepository()}
}

// List returns every product matching f.
func (s *ProductService) List(ctx context.Context, f repositories.ProductFilter) ([]models.Product, error) {
	if !repositories.ValidOrdering(f.Ordering) {
		return nil, invalid("ordering", fmt.Sprintf("%q is not a valid ordering.", f.Ordering))
	}
	return s.products.List(ctx, f)
}

// Paginate returns one page of products matching f.
func (s *ProductService) Paginate(ctx context.Context, f repositories.ProductFilter, page, size int) ([]models.Product, orm.Pagination, error) {
	if !repositories.ValidOrdering(f.Ordering) {
		return nil, orm.Pagination{}, invalid("ordering", fmt.Sprintf("%q is not a valid ordering.", f.Ordering))
	}
	return s.products.Paginate(ctx, f, page, size)
}

// Get reads through the product cache.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (models.Product, error) {
	p, err := cache.Remember(ctx, productCacheKey(id), productCacheTTL, func() (models.Product, error) {
		return s.products.FindByID(ctx, id)
	})
	if orm.IsNotFound(err) {
		return models.Product{}, ErrNotFound
	}
	return p, err
}

// Create lists a new product owned by p. Only sellers and admins may sell.
func (s *ProductService) Create(ctx context.Context, p models.Principal, in ProductInput) (models.Product, error) {
	if !policies.CanCreateProduct(p) {
		return models.Product{}, ErrForbidden
	}

	if err := in.check(); err != nil {
		return models.Product{}, err
	}

	product := models.Product{SellerID: p.UserID}
	in.patch().apply(&product)

	if err := s.products.Create(ctx, &product); err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}
	logger.WithCtx(ctx).Info("product created", "product_id", product.ID.String(), "seller_id", p.UserID)
	return product, nil
}

// Replace overwrites every editable field (PUT).
func (s *ProductService) Replace(ctx context.Context, p models.Principal, id uuid.UUID, in ProductInput) (models.Product, error) {
	if err := in.check(); err != nil {
		return models.Product{}, err
	}
	return s.Update(ctx, p, id, in.patch())
}

// Update applies the non-nil fields of patch (PATCH).
func (s *ProductService) Update(ctx context.Context, p models.Principal, id uuid.UUID, patch ProductPatch) (models.Product, error) {
	product, err := s.ownedProduct(ctx, p, id)
	if err != nil {
		return models.Product{}, err
	}

	patch.apply(&product)
	if err := s.products.Save(ctx, &product); err != nil {
		return models.Product{}, fmt.Errorf("update product: %w", err)
	}
	s.forget(ctx, id)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, p models.Principal, id uuid.UUID) error {
	product, err := s.ownedProduct(ctx, p, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, &product); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.forget(ctx, id)
	return nil
}

// ownedProduct loads id from the database, bypassing the cache, and checks
// that p may change it.
func (s *ProductService) ownedProduct(ctx context.Context, p models.Principal, id uuid.UUID) (models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if orm.IsNotFound(err) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, fmt.Errorf("load product: %w", err)
	}
	if !policies.CanModifyProduct(p, product) {
		return models.Product{}, ErrForbidden
	}
	return product, nil
}

func (s *ProductService) forget(ctx context.Context, id uuid.UUID) {
	if err := cache.Forget(ctx, productCacheKey(id)); err != nil {
		logger.WithCtx(ctx).Warn("product cache invalidation failed", "product_id", id.String(), "error", err)
	}
}
