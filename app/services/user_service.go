package services

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/policies"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

type UserService struct {
	users *repositories.UserRepository
}

func NewUserService() *UserService {
	return &UserService{users: repositories.NewUserRepository()}
}

func (s *UserService) Get(ctx context.Context, id uint) (models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if orm.IsNotFound(err) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// List pages through every account.
func (s *UserService) List(ctx context.Context, page, size int) ([]models.User, orm.Pagination, error) {
	return s.users.All(ctx, page, size)
}

// SetActive enables or disables an account. Admin only; admins cannot
// disable themselves.
func (s *UserService) SetActive(ctx context.Context, p models.Principal, id uint, active bool) (models.User, error) {
	if !policies.IsAdmin(p) {
		return models.User{}, ErrForbidden
	}
	if id == p.UserID && !active {
		return models.User{}, invalid("is_active", "You cannot disable your own account.")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return models.User{}, err
	}
	if err := s.users.SetActive(ctx, id, active); err != nil {
		return models.User{}, fmt.Errorf("set active: %w", err)
	}
	return s.Get(ctx, id)
}

// Stats is the dashboard summary. Revenue is not aggregated yet.
type Stats struct {
	TotalRevenue  int64 `json:"totalRevenue"`
	TotalOrders   int64 `json:"totalOrders"`
	TotalProducts int64 `json:"totalProducts"`
	TotalUsers    int64 `json:"totalUsers"`
}

type DashboardService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
	users    *repositories.UserRepository
}

func NewDashboardService() *DashboardService {
	return &DashboardService{
		orders:   repositories.NewOrderRepository(),
		products: repositories.NewProductRepository(),
		users:    repositories.NewUserRepository(),
	}
}

func (s *DashboardService) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var err error
	if st.TotalOrders, err = s.orders.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count orders: %w", err)
	}
	if st.TotalProducts, err = s.products.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count products: %w", err)
	}
	if st.TotalUsers, err = s.users.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count users: %w", err)
	}
	return st, nil
}
