package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalogue entry owned by a seller.
type Product struct {
	ID            uuid.UUID       `gorm:"type:char(36);primaryKey"`
	SellerID      uint            `gorm:"not null;index"`
	Seller        *User           `gorm:"constraint:OnDelete:CASCADE"`
	Name          string          `gorm:"size:255;not null;index"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	Category      string          `gorm:"size:100;index"`
	Brand         string          `gorm:"size:100;index"`
	ImageURL      string          `gorm:"size:500"`
	VideoURL      string          `gorm:"size:500"`
	IsFeatured    bool            `gorm:"not null;index"`
	IsPopular     bool            `gorm:"not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
