package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PageContent is an editable static page addressed by slug ("about", "terms").
type PageContent struct {
	ID        uint   `gorm:"primaryKey"`
	Slug      string `gorm:"size:100;not null;uniqueIndex"`
	Title     string `gorm:"size:255;not null"`
	Content   string `gorm:"type:text"`
	UpdatedAt time.Time
}

// Affiliate is a user's referral account. One per user.
type Affiliate struct {
	ID           uint            `gorm:"primaryKey"`
	UserID       uint            `gorm:"not null;uniqueIndex"`
	User         *User           `gorm:"constraint:OnDelete:CASCADE"`
	ReferralCode string          `gorm:"size:20;not null;uniqueIndex"`
	Earnings     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Clicks       int             `gorm:"not null;default:0"`
	CreatedAt    time.Time
}
