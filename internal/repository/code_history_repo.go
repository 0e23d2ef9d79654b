package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CodeHistoryRepository interface {
	Create(ctx context.Context, h *model.CodeHistory) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.CodeHistory, error)
}

type codeHistoryRepository struct{ db *gorm.DB }

func NewCodeHistoryRepository(db *gorm.DB) CodeHistoryRepository {
	return &codeHistoryRepository{db: db}
}

func (r *codeHistoryRepository) Create(ctx context.Context, h *model.CodeHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *codeHistoryRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.CodeHistory, error) {
	var list []model.CodeHistory
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&list).Error
	return list, err
}
