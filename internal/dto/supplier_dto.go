package dto

import (
	"time"

	"github.com/google/uuid"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateSupplierRequest struct {
	Name         string  `json:"name"          validate:"required,min=2,max=150"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
	Phone        *string `json:"phone"         validate:"omitempty,max=30"`
	FeedURL      *string `json:"feed_url"      validate:"omitempty,url"`
}

type UpdateSupplierRequest struct {
	Name         *string `json:"name"          validate:"omitempty,min=2,max=150"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
	Phone        *string `json:"phone"         validate:"omitempty,max=30"`
	FeedURL      *string `json:"feed_url"      validate:"omitempty,url"`
	IsActive     *bool   `json:"is_active"`
}

// SyncSupplierRequest triggers a feed synchronization. The body is optional:
// when notify_email is set, a summary mail is sent once the import finishes.
type SyncSupplierRequest struct {
	NotifyEmail string `json:"notify_email" validate:"omitempty,email"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type SupplierResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	FeedURL      *string   `json:"feed_url,omitempty"`
	IsActive     bool      `json:"is_active"`
}

// ImportJobResponse is what the product import page polls while a
// synchronization runs.
type ImportJobResponse struct {
	ID         uuid.UUID  `json:"id"`
	SupplierID uuid.UUID  `json:"supplier_id"`
	Status     string     `json:"status"`
	Processed  int        `json:"processed"`
	Created    int        `json:"created"`
	Updated    int        `json:"updated"`
	Failed     int        `json:"failed"`
	Log        string     `json:"log"`
	Error      *string    `json:"error,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
