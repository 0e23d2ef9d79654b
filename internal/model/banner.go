package model

import (
	"time"

	"github.com/google/uuid"
)

// Banner is a promotional image shown on the storefront home page.
// StartsAt/EndsAt bound an optional display window; nil means unbounded.
type Banner struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string    `gorm:"not null"`
	ImagePath string    `gorm:"not null"`
	LinkURL   *string
	StartsAt  *time.Time
	EndsAt    *time.Time
	IsActive  bool `gorm:"not null;default:true"`
	SortOrder int  `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Banner) TableName() string { return "banners" }

// Live reports whether the banner should currently be displayed.
func (b *Banner) Live(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartsAt != nil && now.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && now.After(*b.EndsAt) {
		return false
	}
	return true
}
