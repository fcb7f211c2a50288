package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// PageRepository handles database operations for PageContent.
type PageRepository struct{ base }

func NewPageRepository() *PageRepository {
	return &PageRepository{}
}

func (r *PageRepository) WithTx(tx *orm.Query) *PageRepository {
	return &PageRepository{base{tx: tx}}
}

func (r *PageRepository) FindBySlug(ctx context.Context, slug string) (models.PageContent, error) {
	var p models.PageContent
	err := r.q(ctx).Model(&models.PageContent{}).Where("slug = ?", slug).First(&p)
	return p, err
}

// Save inserts or updates p by primary key.
func (r *PageRepository) Save(ctx context.Context, p *models.PageContent) error {
	return r.q(ctx).Save(p)
}

// AffiliateRepository handles database operations for Affiliate.
type AffiliateRepository struct{ base }

func NewAffiliateRepository() *AffiliateRepository {
	return &AffiliateRepository{}
}

func (r *AffiliateRepository) WithTx(tx *orm.Query) *AffiliateRepository {
	return &AffiliateRepository{base{tx: tx}}
}

func (r *AffiliateRepository) List(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Affiliate, error) {
	var out []models.Affiliate
	err := r.q(ctx).Model(&models.Affiliate{}).Scopes(scope).Order("id").Get(&out)
	return out, err
}

func (r *AffiliateRepository) ExistsForUser(ctx context.Context, userID uint) (bool, error) {
	return r.q(ctx).Model(&models.Affiliate{}).Where("user_id = ?", userID).Exists()
}

func (r *AffiliateRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	return r.q(ctx).Model(&models.Affiliate{}).Where("referral_code = ?", code).Exists()
}

func (r *AffiliateRepository) Create(ctx context.Context, a *models.Affiliate) error {
	return r.q(ctx).CreateWithoutAssociations(a)
}
