package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaRepository interface {
	Create(ctx context.Context, m *model.MediaFile) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MediaFile, error)
	List(ctx context.Context, page, perPage int) ([]model.MediaFile, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type mediaRepository struct{ db *gorm.DB }

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, m *model.MediaFile) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MediaFile, error) {
	var m model.MediaFile
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mediaRepository) List(ctx context.Context, page, perPage int) ([]model.MediaFile, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 40
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.MediaFile{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.MediaFile
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&list).Error
	return list, total, err
}

func (r *mediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MediaFile{}, "id = ?", id).Error
}
