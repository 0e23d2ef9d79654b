package dto

import (
	"time"

	"github.com/google/uuid"
)

type MediaFileResponse struct {
	ID         uuid.UUID `json:"id"`
	FileName   string    `json:"file_name"`
	URL        string    `json:"url"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedBy uuid.UUID `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

type MediaListResponse struct {
	Items   []MediaFileResponse `json:"items"`
	Total   int64               `json:"total"`
	Page    int                 `json:"page"`
	PerPage int                 `json:"per_page"`
}
