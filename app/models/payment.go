package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentCompleted is the status recorded when none is supplied.
const PaymentCompleted = "completed"

// Payment settles exactly one order.
type Payment struct {
	ID            uint            `gorm:"primaryKey"`
	OrderID       uuid.UUID       `gorm:"type:char(36);not null;uniqueIndex"`
	Order         *Order          `gorm:"constraint:OnDelete:CASCADE"`
	UserID        uint            `gorm:"not null;index"`
	User          *User           `gorm:"constraint:OnDelete:CASCADE"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status        string          `gorm:"size:50;not null"`
	PaymentMethod string          `gorm:"size:50;not null"`
	TransactionID string          `gorm:"size:100"`
	CreatedAt     time.Time
}
