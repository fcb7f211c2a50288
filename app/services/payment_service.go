package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/policies"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// PaymentInput records a payment against an order. Amount defaults to the
// order total.
type PaymentInput struct {
	OrderID       string           `json:"order"          validate:"required,uuid"`
	Amount        *decimal.Decimal `json:"amount"         validate:"nullable,gte=0"`
	Status        string           `json:"status"         validate:"max=50"`
	PaymentMethod string           `json:"payment_method" validate:"required,max=50"`
	TransactionID string           `json:"transaction_id" validate:"max=100"`
}

// PaymentPatch changes a recorded payment; nil fields are left unchanged.
type PaymentPatch struct {
	Amount        *decimal.Decimal `json:"amount"         validate:"nullable,gte=0"`
	Status        *string          `json:"status"         validate:"nullable,max=50"`
	PaymentMethod *string          `json:"payment_method" validate:"nullable,min=1,max=50"`
	TransactionID *string          `json:"transaction_id" validate:"nullable,max=100"`
}

// PaymentReplace is the PUT payload. Every editable field is overwritten;
// an empty status falls back to completed.
type PaymentReplace struct {
	Amount        *decimal.Decimal `json:"amount"         validate:"required,gte=0"`
	Status        string           `json:"status"         validate:"max=50"`
	PaymentMethod string           `json:"payment_method" validate:"required,max=50"`
	TransactionID string           `json:"transaction_id" validate:"max=100"`
}

func (in PaymentReplace) patch() PaymentPatch {
	return PaymentPatch{
		Amount:        in.Amount,
		Status:        &in.Status,
		PaymentMethod: &in.PaymentMethod,
		TransactionID: &in.TransactionID,
	}
}

type PaymentService struct {
	payments *repositories.PaymentRepository
	orders   *OrderService
}

func NewPaymentService() *PaymentService {
	return &PaymentService{
		payments: repositories.NewPaymentRepository(),
		orders:   NewOrderService(),
	}
}

func (s *PaymentService) List(ctx context.Context, p models.Principal) ([]models.Payment, error) {
	scope, err := policies.OwnedScope(p, "user_id")
	if err != nil {
		return nil, err
	}
	return s.payments.List(ctx, scope)
}

// Get returns one payment; payments p may not see are reported as not found.
func (s *PaymentService) Get(ctx context.Context, p models.Principal, id uint) (models.Payment, error) {
	pay, err := s.payments.FindByID(ctx, id)
	if err != nil {
		if orm.IsNotFound(err) {
			return models.Payment{}, ErrNotFound
		}
		return models.Payment{}, fmt.Errorf("load payment: %w", err)
	}
	if !policies.CanAccessOwned(p, pay.UserID) {
		return models.Payment{}, ErrNotFound
	}
	return pay, nil
}

// Create pays for an order visible to p. An order takes one payment only.
func (s *PaymentService) Create(ctx context.Context, p models.Principal, in PaymentInput) (models.Payment, error) {
	orderID, err := uuid.Parse(strings.TrimSpace(in.OrderID))
	if err != nil {
		return models.Payment{}, invalid("order", "Must be a valid UUID.")
	}

	order, err := s.orders.Get(ctx, p, orderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Payment{}, invalid("order", "Order does not exist.")
		}
		return models.Payment{}, err
	}

	exists, err := s.payments.ExistsForOrder(ctx, order.ID)
	if err != nil {
		return models.Payment{}, fmt.Errorf("check payment: %w", err)
	}
	if exists {
		return models.Payment{}, ErrPaymentExists
	}

	amount := order.TotalAmount
	if in.Amount != nil {
		amount = in.Amount.Round(2)
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = models.PaymentCompleted
	}

	pay := models.Payment{
		OrderID:       order.ID,
		UserID:        order.UserID,
		Amount:        amount,
		Status:        status,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		TransactionID: strings.TrimSpace(in.TransactionID),
	}
	if err := s.payments.Create(ctx, &pay); err != nil {
		if lostInsertRace(ctx, err, func(ctx context.Context) (bool, error) {
			return s.payments.ExistsForOrder(ctx, order.ID)
		}) {
			return models.Payment{}, ErrPaymentExists
		}
		return models.Payment{}, fmt.Errorf("create payment: %w", err)
	}
	return pay, nil
}

// Replace overwrites a payment p can see (PUT).
func (s *PaymentService) Replace(ctx context.Context, p models.Principal, id uint, in PaymentReplace) (models.Payment, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Payment{}, &ValidationError{Fields: errs}
	}
	return s.Update(ctx, p, id, in.patch())
}

// Update applies patch to a payment p can see (PATCH).
func (s *PaymentService) Update(ctx context.Context, p models.Principal, id uint, patch PaymentPatch) (models.Payment, error) {
	pay, err := s.Get(ctx, p, id)
	if err != nil {
		return models.Payment{}, err
	}

	if patch.Amount != nil {
		pay.Amount = patch.Amount.Round(2)
	}
	if patch.Status != nil {
		pay.Status = strings.TrimSpace(*patch.Status)
		if pay.Status == "" {
			pay.Status = models.PaymentCompleted
		}
	}
	if patch.PaymentMethod != nil {
		pay.PaymentMethod = strings.TrimSpace(*patch.PaymentMethod)
	}
	if patch.TransactionID != nil {
		pay.TransactionID = strings.TrimSpace(*patch.TransactionID)
	}

	if err := s.payments.Save(ctx, &pay); err != nil {
		return models.Payment{}, fmt.Errorf("update payment: %w", err)
	}
	return pay, nil
}

func (s *PaymentService) Delete(ctx context.Context, p models.Principal, id uint) error {
	pay, err := s.Get(ctx, p, id)
	if err != nil {
		return err
	}
	if err := s.payments.Delete(ctx, &pay); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}
