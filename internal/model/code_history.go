package model

import (
	"time"

	"github.com/google/uuid"
)

// CodeHistory records every SKU change of a product so old labels and order
// lines can still be traced back after a renumbering.
type CodeHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null"`
	OldSKU    string    `gorm:"not null"`
	NewSKU    string    `gorm:"not null"`
	ChangedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
}

func (CodeHistory) TableName() string { return "code_history" }
