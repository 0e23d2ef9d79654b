package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is one node of the catalogue tree. The hierarchy is stored flat:
// each row points at its parent and roots carry a nil ParentID. Depth is
// limited to three levels (menu / catégorie / sous-catégorie) by UI convention
// only — nothing structural prevents a fourth level.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"not null"`
	Slug        string    `gorm:"uniqueIndex;not null"`
	Description *string
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	IsActive    bool       `gorm:"not null;default:true"`
	// SortOrder drives sibling display order, ascending; ties break on Name.
	SortOrder int `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Category) TableName() string { return "categories" }
