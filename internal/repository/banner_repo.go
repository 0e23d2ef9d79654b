package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BannerRepository interface {
	Create(ctx context.Context, b *model.Banner) error
	List(ctx context.Context) ([]model.Banner, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Banner, error)
	Update(ctx context.Context, b *model.Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SwapSortOrder exchanges the sort_order of two banners in one transaction.
	SwapSortOrder(ctx context.Context, a, b *model.Banner) error
	NextSortOrder(ctx context.Context) (int, error)
}

type bannerRepository struct{ db *gorm.DB }

func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) Create(ctx context.Context, b *model.Banner) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bannerRepository) List(ctx context.Context) ([]model.Banner, error) {
	var list []model.Banner
	err := r.db.WithContext(ctx).Order("sort_order asc, title asc").Find(&list).Error
	return list, err
}

func (r *bannerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Banner, error) {
	var b model.Banner
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bannerRepository) Update(ctx context.Context, b *model.Banner) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *bannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Banner{}, "id = ?", id).Error
}

func (r *bannerRepository) SwapSortOrder(ctx context.Context, a, b *model.Banner) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Banner{}).Where("id = ?", a.ID).
			Update("sort_order", b.SortOrder).Error; err != nil {
			return err
		}
		return tx.Model(&model.Banner{}).Where("id = ?", b.ID).
			Update("sort_order", a.SortOrder).Error
	})
}

func (r *bannerRepository) NextSortOrder(ctx context.Context) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&model.Banner{}).
		Select("max(sort_order)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}
