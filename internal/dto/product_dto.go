package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name           string           `json:"name"             validate:"required,min=2,max=200"`
	Description    *string          `json:"description"`
	CategoryID     *uuid.UUID       `json:"category_id"`
	SupplierID     *uuid.UUID       `json:"supplier_id"`
	Price          decimal.Decimal  `json:"price"            validate:"required,gt=0"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price" validate:"omitempty,gt=0"`
	Stock          int              `json:"stock"            validate:"min=0"`
	ImagePath      *string          `json:"image_path"`
}

type UpdateProductRequest struct {
	Name           *string          `json:"name"             validate:"omitempty,min=2,max=200"`
	SKU            *string          `json:"sku"              validate:"omitempty,min=3,max=40"`
	Description    *string          `json:"description"`
	CategoryID     *uuid.UUID       `json:"category_id"`
	SupplierID     *uuid.UUID       `json:"supplier_id"`
	Price          *decimal.Decimal `json:"price"            validate:"omitempty,gt=0"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price" validate:"omitempty,gt=0"`
	Stock          *int             `json:"stock"            validate:"omitempty,min=0"`
	ImagePath      *string          `json:"image_path"`
	IsActive       *bool            `json:"is_active"`
}

// ProductListQuery mirrors the list page filters: free-text search, category
// and supplier filters, sort column and pagination.
type ProductListQuery struct {
	Search          string     `form:"search"`
	CategoryID      *uuid.UUID `form:"category_id"`
	SupplierID      *uuid.UUID `form:"supplier_id"`
	IncludeInactive bool       `form:"include_inactive"`
	SortBy          string     `form:"sort_by"`   // name | sku | price | created_at
	SortDesc        bool       `form:"sort_desc"`
	Page            int        `form:"page"`
	PerPage         int        `form:"per_page"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type ProductResponse struct {
	ID             uuid.UUID        `json:"id"`
	SKU            string           `json:"sku"`
	Name           string           `json:"name"`
	Slug           string           `json:"slug"`
	Description    *string          `json:"description,omitempty"`
	CategoryID     *uuid.UUID       `json:"category_id,omitempty"`
	SupplierID     *uuid.UUID       `json:"supplier_id,omitempty"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty"`
	Stock          int              `json:"stock"`
	ImagePath      *string          `json:"image_path,omitempty"`
	IsActive       bool             `json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
}

type ProductListResponse struct {
	Items   []ProductResponse `json:"items"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
}

type CodeHistoryResponse struct {
	OldSKU    string    `json:"old_sku"`
	NewSKU    string    `json:"new_sku"`
	ChangedBy uuid.UUID `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}
