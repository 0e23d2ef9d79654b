package model

import (
	"time"

	"github.com/google/uuid"
)

// MediaFile is an uploaded asset (banner image, product photo, document).
// The bytes live on disk under the configured media root; StoragePath is
// relative to that root.
type MediaFile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FileName    string    `gorm:"not null"`
	StoragePath string    `gorm:"uniqueIndex;not null"`
	MimeType    string    `gorm:"not null"`
	SizeBytes   int64     `gorm:"not null"`
	UploadedBy  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
}

func (MediaFile) TableName() string { return "media_files" }
