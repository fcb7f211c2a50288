package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is one checkout. It is always created together with its items.
type Order struct {
	ID           uuid.UUID       `gorm:"type:char(36);primaryKey"`
	UserID       uint            `gorm:"not null;index"`
	User         *User           `gorm:"constraint:OnDelete:CASCADE"`
	CustomerName string          `gorm:"size:255;not null"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status       OrderStatus     `gorm:"size:20;not null;index"`
	CreatedAt    time.Time       `gorm:"index"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderPending
	}
	return nil
}

// OrderItem is a line of an order. PriceAtPurchase is the unit price the
// customer was charged and never follows later product price changes.
// ProductID goes NULL when the product is deleted.
type OrderItem struct {
	ID              uint            `gorm:"primaryKey"`
	OrderID         uuid.UUID       `gorm:"type:char(36);not null;index"`
	Order           *Order          `gorm:"constraint:OnDelete:CASCADE"`
	ProductID       *uuid.UUID      `gorm:"type:char(36);index"`
	Product         *Product        `gorm:"constraint:OnDelete:SET NULL"`
	Quantity        int             `gorm:"not null;default:1"`
	PriceAtPurchase decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// Subtotal is quantity times the purchase price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
