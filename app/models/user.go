package models

import (
	"strings"
	"time"
)

// User is an account. Username is the login identifier.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"size:254;index" json:"email"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	FirstName   string    `gorm:"size:150" json:"first_name"`
	LastName    string    `gorm:"size:150" json:"last_name"`
	Role        Role      `gorm:"size:10;not null;index" json:"role"`
	Bio         string    `gorm:"type:text" json:"bio"`
	BonusPoints int       `gorm:"not null;default:0" json:"bonus_points"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	DateJoined  time.Time `gorm:"autoCreateTime" json:"date_joined"`
}

// FullName is "first last" with blanks dropped.
func (u User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// DisplayName falls back to the username when no name is set.
func (u User) DisplayName() string {
	if n := u.FullName(); n != "" {
		return n
	}
	return u.Username
}
