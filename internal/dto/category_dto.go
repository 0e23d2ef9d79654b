package dto

import "github.com/google/uuid"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateCategoryRequest struct {
	Name        string     `json:"name"        validate:"required,min=2,max=100"`
	Description *string    `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// MoveCategoryRequest reparents a category. A nil ParentID moves it to the
// root ("menu principal") level.
type MoveCategoryRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

type ReorderCategoryRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	SortOrder   int        `json:"sort_order"`
}

// CategoryTreeResponse is one node of the derived forest. Children are always
// present (possibly empty) so the admin tree view can render toggles without
// nil checks.
type CategoryTreeResponse struct {
	CategoryResponse
	Children []CategoryTreeResponse `json:"children"`
}
