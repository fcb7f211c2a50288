package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/policies"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// EventOrderPlaced fires with the committed models.Order.
const EventOrderPlaced = "order.placed"

// OrderItemInput is one cart line. The product may be given as "id" or
// "productId"; quantity defaults to 1.
type OrderItemInput struct {
	ID        string           `json:"id"`
	ProductID string           `json:"productId"`
	Quantity  *int             `json:"quantity"`
	Price     *decimal.Decimal `json:"price"`
}

// PlaceOrderInput is the checkout payload.
type PlaceOrderInput struct {
	Items        []OrderItemInput `json:"items"`
	TotalPrice   *decimal.Decimal `json:"totalPrice"`
	CustomerName string           `json:"customerName" validate:"max=255"`
}

type cartLine struct {
	productID uuid.UUID
	quantity  int
	price     decimal.Decimal
}

type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
	users    *repositories.UserRepository
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders:   repositories.NewOrderRepository(),
		products: repositories.NewProductRepository(),
		users:    repositories.NewUserRepository(),
	}
}

// Place validates the cart and writes the order and all of its items in
// one transaction. Item prices are stored as submitted.
func (s *OrderService) Place(ctx context.Context, p models.Principal, in PlaceOrderInput) (models.Order, error) {
	if len(in.Items) == 0 {
		return models.Order{}, ErrEmptyOrder
	}

	lines, err := parseCart(in.Items)
	if err != nil {
		return models.Order{}, err
	}

	items := make([]models.OrderItem, len(lines))
	total := decimal.Zero
	for i, l := range lines {
		pid := l.productID
		items[i] = models.OrderItem{
			ProductID:       &pid,
			Quantity:        l.quantity,
			PriceAtPurchase: l.price,
		}
		total = total.Add(items[i].Subtotal())
	}
	if in.TotalPrice != nil {
		if in.TotalPrice.IsNegative() {
			return models.Order{}, invalid("totalPrice", "Ensure this value is greater than or equal to 0.")
		}
		total = *in.TotalPrice
	}

	customer, err := s.customerName(ctx, p, in.CustomerName)
	if err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		UserID:       p.UserID,
		CustomerName: customer,
		TotalAmount:  total.Round(2),
		Status:       models.OrderPending,
	}

	err = orm.Transaction(ctx, func(tx *orm.Query) error {
		ids := collection.Map(lines, func(l cartLine) uuid.UUID { return l.productID })
		found, err := s.products.WithTx(tx).ExistingIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("check products: %w", err)
		}
		for _, id := range ids {
			if !found[id] {
				return fmt.Errorf("%w: %s", ErrUnknownProduct, id)
			}
		}

		orders := s.orders.WithTx(tx)
		if err := orders.Create(ctx, &order); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := orders.CreateItems(ctx, items); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, fmt.Errorf("place order: %w", err)
	}

	placed, err := s.orders.FindByID(ctx, order.ID, unscoped)
	if err != nil {
		return models.Order{}, fmt.Errorf("place order: reload: %w", err)
	}

	logger.WithCtx(ctx).Info("order placed",
		"order_id", placed.ID.String(),
		"user_id", p.UserID,
		"items", len(placed.Items),
		"total", placed.TotalAmount.StringFixed(2),
	)
	event.Fire(ctx, EventOrderPlaced, placed)
	return placed, nil
}

func parseCart(in []OrderItemInput) ([]cartLine, error) {
	errs := map[string]string{}
	lines := make([]cartLine, 0, len(in))

	for i, item := range in {
		key := fmt.Sprintf("items[%d]", i)

		raw := strings.TrimSpace(item.ID)
		if raw == "" {
			raw = strings.TrimSpace(item.ProductID)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			errs[key+".id"] = "Must be a valid UUID."
		}

		qty := 1
		if item.Quantity != nil {
			qty = *item.Quantity
		}
		if qty < 1 {
			errs[key+".quantity"] = "Ensure this value is greater than or equal to 1."
		}

		var price decimal.Decimal
		switch {
		case item.Price == nil:
			errs[key+".price"] = "This field is required."
		case item.Price.IsNegative():
			errs[key+".price"] = "Ensure this value is greater than or equal to 0."
		default:
			price = item.Price.Round(2)
		}

		lines = append(lines, cartLine{productID: id, quantity: qty, price: price})
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return lines, nil
}

// customerName prefers the submitted name, then the user's full name, then
// the username.
func (s *OrderService) customerName(ctx context.Context, p models.Principal, submitted string) (string, error) {
	if name := strings.TrimSpace(submitted); name != "" {
		return name, nil
	}
	user, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return "", fmt.Errorf("place order: load customer: %w", err)
	}
	return user.DisplayName(), nil
}

// List returns the orders p may see, newest first.
func (s *OrderService) List(ctx context.Context, p models.Principal) ([]models.Order, error) {
	scope, err := policies.OwnedScope(p, "user_id")
	if err != nil {
		return nil, err
	}
	return s.orders.List(ctx, scope)
}

// Get returns one order. Orders p may not see are reported as not found.
func (s *OrderService) Get(ctx context.Context, p models.Principal, id uuid.UUID) (models.Order, error) {
	scope, err := policies.OwnedScope(p, "user_id")
	if err != nil {
		return models.Order{}, err
	}
	o, err := s.orders.FindByID(ctx, id, scope)
	if orm.IsNotFound(err) {
		return models.Order{}, ErrNotFound
	}
	return o, err
}

// UpdateStatus moves an order to a new status. Admin only.
func (s *OrderService) UpdateStatus(ctx context.Context, p models.Principal, id uuid.UUID, raw string) (models.Order, error) {
	if !policies.IsAdmin(p) {
		return models.Order{}, ErrForbidden
	}
	status, err := models.ParseOrderStatus(raw)
	if err != nil {
		return models.Order{}, invalid("status", fmt.Sprintf("%q is not a valid choice.", raw))
	}

	if _, err := s.Get(ctx, p, id); err != nil {
		return models.Order{}, err
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return models.Order{}, fmt.Errorf("update order status: %w", err)
	}
	return s.Get(ctx, p, id)
}
