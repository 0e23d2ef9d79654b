package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalogue item sold in the shop. SKU is generated server-side
// on creation and never reused; manual SKU changes are recorded in CodeHistory.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"not null"`
	Slug        string    `gorm:"index;not null"`
	Description *string
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	SupplierID  *uuid.UUID `gorm:"type:uuid;index"`
	// SupplierRef is the item's identifier inside the supplier feed; the import
	// worker upserts on (SupplierID, SupplierRef).
	SupplierRef    *string          `gorm:"index"`
	Price          decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	CompareAtPrice *decimal.Decimal `gorm:"type:numeric(12,2)"`
	Stock          int              `gorm:"not null;default:0"`
	ImagePath      *string
	IsActive       bool `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Product) TableName() string { return "products" }
