package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// PaymentRepository handles database operations for Payment.
type PaymentRepository struct{ base }

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

func (r *PaymentRepository) WithTx(tx *orm.Query) *PaymentRepository {
	return &PaymentRepository{base{tx: tx}}
}

func (r *PaymentRepository) List(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Payment, error) {
	var out []models.Payment
	err := r.q(ctx).Model(&models.Payment{}).Scopes(scope).Order("created_at DESC").Order("id DESC").Get(&out)
	return out, err
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uint) (models.Payment, error) {
	var p models.Payment
	err := r.q(ctx).Model(&models.Payment{}).Where("id = ?", id).First(&p)
	return p, err
}

func (r *PaymentRepository) ExistsForOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	return r.q(ctx).Model(&models.Payment{}).Where("order_id = ?", orderID.String()).Exists()
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	return r.q(ctx).CreateWithoutAssociations(p)
}

func (r *PaymentRepository) Save(ctx context.Context, p *models.Payment) error {
	return r.q(ctx).Save(p)
}

func (r *PaymentRepository) Delete(ctx context.Context, p *models.Payment) error {
	return r.q(ctx).Delete(p)
}
