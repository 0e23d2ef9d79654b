package dto

import (
	"time"

	"github.com/google/uuid"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateBannerRequest struct {
	Title     string     `json:"title"      validate:"required,min=2,max=150"`
	ImagePath string     `json:"image_path" validate:"required"`
	LinkURL   *string    `json:"link_url"   validate:"omitempty,url"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

type UpdateBannerRequest struct {
	Title     *string    `json:"title"      validate:"omitempty,min=2,max=150"`
	ImagePath *string    `json:"image_path"`
	LinkURL   *string    `json:"link_url"   validate:"omitempty,url"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
	IsActive  *bool      `json:"is_active"`
}

type ReorderBannerRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type BannerResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	ImagePath string     `json:"image_path"`
	LinkURL   *string    `json:"link_url,omitempty"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	IsActive  bool       `json:"is_active"`
	SortOrder int        `json:"sort_order"`
	Live      bool       `json:"live"`
}
