package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct{ base }

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) WithTx(tx *orm.Query) *OrderRepository {
	return &OrderRepository{base{tx: tx}}
}

// Create inserts the order row only; items go through CreateItems.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	return r.q(ctx).CreateWithoutAssociations(o)
}

// CreateItems inserts every item in one multi-row statement.
func (r *OrderRepository) CreateItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.q(ctx).CreateWithoutAssociations(&items)
}

func withItems(q *orm.Query) *orm.Query {
	return q.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).Preload("Items.Product")
}

// FindByID loads an order with its items and their products. scope limits
// which orders are visible.
func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID, scope func(*gorm.DB) *gorm.DB) (models.Order, error) {
	var o models.Order
	err := withItems(r.q(ctx).Model(&models.Order{}).Scopes(scope)).Where("id = ?", id.String()).First(&o)
	return o, err
}

// List returns the visible orders, newest first.
func (r *OrderRepository) List(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Order, error) {
	var out []models.Order
	err := withItems(r.q(ctx).Model(&models.Order{}).Scopes(scope)).Order("created_at DESC").Get(&out)
	return out, err
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	return r.q(ctx).Model(&models.Order{}).Where("id = ?", id.String()).Updates(map[string]interface{}{"status": status})
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	return r.q(ctx).Model(&models.Order{}).Count()
}
