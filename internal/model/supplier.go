package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a product source. FeedURL, when set, points at the supplier's
// paginated JSON feed consumed by the import worker.
type Supplier struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"uniqueIndex;not null"`
	ContactEmail *string
	Phone        *string
	FeedURL      *string
	IsActive     bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Supplier) TableName() string { return "suppliers" }
