package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// ProductFilter narrows a catalogue listing. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	Brand    string
	SellerID uint
	Featured *bool
	Popular  *bool
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Search   string
	Ordering string
}

var productOrderings = map[string]string{
	"price":       "price ASC",
	"-price":      "price DESC",
	"created_at":  "created_at ASC",
	"-created_at": "created_at DESC",
	"name":        "name ASC",
	"-name":       "name DESC",
}

// ValidOrdering reports whether o is an accepted "ordering" value.
func ValidOrdering(o string) bool {
	_, ok := productOrderings[o]
	return o == "" || ok
}

func (f ProductFilter) where(db *gorm.DB) *gorm.DB {
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.Brand != "" {
		db = db.Where("brand = ?", f.Brand)
	}
	if f.SellerID != 0 {
		db = db.Where("seller_id = ?", f.SellerID)
	}
	if f.Featured != nil {
		db = db.Where("is_featured = ?", *f.Featured)
	}
	if f.Popular != nil {
		db = db.Where("is_popular = ?", *f.Popular)
	}
	if f.MinPrice != nil {
		db = db.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where("price <= ?", *f.MaxPrice)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	return db
}

func (f ProductFilter) orderBy() string {
	order, ok := productOrderings[f.Ordering]
	if !ok {
		order = productOrderings["-created_at"]
	}
	return order + ", id ASC"
}

// ProductRepository handles database operations for Product.
type ProductRepository struct{ base }

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) WithTx(tx *orm.Query) *ProductRepository {
	return &ProductRepository{base{tx: tx}}
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (models.Product, error) {
	var p models.Product
	err := r.q(ctx).Model(&models.Product{}).Where("id = ?", id.String()).First(&p)
	return p, err
}

// List returns every product matching f.
func (r *ProductRepository) List(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	var out []models.Product
	err := r.q(ctx).Model(&models.Product{}).Scopes(f.where).Order(f.orderBy()).Get(&out)
	return out, err
}

// Paginate returns one page of products matching f.
func (r *ProductRepository) Paginate(ctx context.Context, f ProductFilter, page, limit int) ([]models.Product, orm.Pagination, error) {
	var out []models.Product
	p, err := r.q(ctx).Model(&models.Product{}).Scopes(f.where).Order(f.orderBy()).GetWithPagination(&out, page, limit)
	return out, p, err
}

// ExistingIDs returns the subset of ids that are present in the table.
func (r *ProductRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	var found []string
	if err := r.q(ctx).Model(&models.Product{}).Where("id IN ?", keys).Pluck("id", &found); err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]bool, len(found))
	for _, s := range found {
		if id, err := uuid.Parse(s); err == nil {
			out[id] = true
		}
	}
	return out, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.q(ctx).CreateWithoutAssociations(p)
}

func (r *ProductRepository) Save(ctx context.Context, p *models.Product) error {
	return r.q(ctx).Save(p)
}

func (r *ProductRepository) Delete(ctx context.Context, p *models.Product) error {
	return r.q(ctx).Delete(p)
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return r.q(ctx).Model(&models.Product{}).Count()
}
