package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImportJobRepository interface {
	Create(ctx context.Context, j *model.ImportJob) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ImportJob, error)
	Update(ctx context.Context, j *model.ImportJob) error
	ListBySupplier(ctx context.Context, supplierID uuid.UUID, limit int) ([]model.ImportJob, error)
	// CountActiveBySupplier counts jobs still pending or running, used to
	// refuse a second concurrent sync for the same supplier.
	CountActiveBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)
}

type importJobRepository struct{ db *gorm.DB }

func NewImportJobRepository(db *gorm.DB) ImportJobRepository {
	return &importJobRepository{db: db}
}

func (r *importJobRepository) Create(ctx context.Context, j *model.ImportJob) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *importJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ImportJob, error) {
	var j model.ImportJob
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *importJobRepository) Update(ctx context.Context, j *model.ImportJob) error {
	return r.db.WithContext(ctx).Save(j).Error
}

func (r *importJobRepository) ListBySupplier(ctx context.Context, supplierID uuid.UUID, limit int) ([]model.ImportJob, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	var list []model.ImportJob
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("created_at desc").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *importJobRepository) CountActiveBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ImportJob{}).
		Where("supplier_id = ? AND status IN ?", supplierID,
			[]string{model.ImportPending, model.ImportRunning}).
		Count(&n).Error
	return n, err
}
