package repositories

import (
	"context"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct{ base }

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) WithTx(tx *orm.Query) *UserRepository {
	return &UserRepository{base{tx: tx}}
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := r.q(ctx).Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// FindByUsername looks up the login identifier.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.q(ctx).Model(&models.User{}).Where("username = ?", username).First(&user)
	return user, err
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.q(ctx).Model(&models.User{}).Where("username = ?", username).Exists()
}

// Create persists a new user record.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.q(ctx).Create(user)
}

func (r *UserRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.q(ctx).Model(&models.User{ID: id}).Updates(map[string]interface{}{"is_active": active})
}

// All returns one page of users ordered by ID.
func (r *UserRepository) All(ctx context.Context, page, limit int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	pagination, err := r.q(ctx).Model(&models.User{}).Order("id").GetWithPagination(&users, page, limit)
	return users, pagination, err
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.q(ctx).Model(&models.User{}).Count()
}
