package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository defines persistence operations for the category tree.
// The tree itself is never stored — only flat rows with parent_id.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	FindByNameAndParent(ctx context.Context, name string, parentID *uuid.UUID) (*model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Siblings returns all categories sharing parentID, ordered by sort_order
	// then name — the canonical sibling order used for up/down moves.
	Siblings(ctx context.Context, parentID *uuid.UUID) ([]model.Category, error)
	// SwapSortOrder exchanges the sort_order of two rows inside one
	// transaction, so a failure leaves both untouched.
	SwapSortOrder(ctx context.Context, a, b *model.Category) error
	NextSortOrder(ctx context.Context, parentID *uuid.UUID) (int, error)
	CountChildren(ctx context.Context, id uuid.UUID) (int64, error)
}

type categoryRepository struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).Order("sort_order asc, name asc").Find(&list).Error
	return list, err
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) FindByNameAndParent(ctx context.Context, name string, parentID *uuid.UUID) (*model.Category, error) {
	q := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	var c model.Category
	if err := q.First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) Siblings(ctx context.Context, parentID *uuid.UUID) ([]model.Category, error) {
	q := r.db.WithContext(ctx).Order("sort_order asc, name asc")
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	var list []model.Category
	err := q.Find(&list).Error
	return list, err
}

func (r *categoryRepository) SwapSortOrder(ctx context.Context, a, b *model.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Category{}).Where("id = ?", a.ID).
			Update("sort_order", b.SortOrder).Error; err != nil {
			return err
		}
		return tx.Model(&model.Category{}).Where("id = ?", b.ID).
			Update("sort_order", a.SortOrder).Error
	})
}

func (r *categoryRepository) NextSortOrder(ctx context.Context, parentID *uuid.UUID) (int, error) {
	q := r.db.WithContext(ctx).Model(&model.Category{})
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	var max *int
	if err := q.Select("max(sort_order)").Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

func (r *categoryRepository) CountChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Where("parent_id = ?", id).Count(&n).Error
	return n, err
}
