package repository

import (
	"context"
	"strconv"
	"strings"

	"backoffice/internal/dto"
	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	FindBySupplierRef(ctx context.Context, supplierID uuid.UUID, ref string) (*model.Product, error)
	Search(ctx context.Context, q dto.ProductListQuery) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)
	// NextSKUSequence returns 1 + the highest numeric suffix among SKUs with
	// the given prefix ("MEU-" → looks at MEU-00042 etc.).
	NextSKUSequence(ctx context.Context, prefix string) (int, error)
}

type productRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) FindBySupplierRef(ctx context.Context, supplierID uuid.UUID, ref string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND supplier_ref = ?", supplierID, ref).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var productSortColumns = map[string]string{
	"name":       "name",
	"sku":        "sku",
	"price":      "price",
	"created_at": "created_at",
}

func (r *productRepository) Search(ctx context.Context, q dto.ProductListQuery) ([]model.Product, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if !q.IncludeInactive {
		tx = tx.Where("is_active = true")
	}
	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where("lower(name) LIKE ? OR lower(sku) LIKE ?", like, like)
	}
	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}
	if q.SupplierID != nil {
		tx = tx.Where("supplier_id = ?", *q.SupplierID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := productSortColumns[q.SortBy]
	if !ok {
		col = "name"
	}
	dir := "asc"
	if q.SortDesc {
		dir = "desc"
	}

	page, perPage := q.Page, q.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}

	var list []model.Product
	err := tx.Order(col + " " + dir).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&list).Error
	return list, total, err
}

func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).Update("is_active", false).Error
}

func (r *productRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}

func (r *productRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("supplier_id = ?", supplierID).Count(&n).Error
	return n, err
}

func (r *productRepository) NextSKUSequence(ctx context.Context, prefix string) (int, error) {
	var last string
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("sku LIKE ?", prefix+"%").
		Order("sku desc").
		Limit(1).
		Pluck("sku", &last).Error
	if err != nil {
		return 0, err
	}
	if last == "" {
		return 1, nil
	}
	n, convErr := strconv.Atoi(strings.TrimPrefix(last, prefix))
	if convErr != nil {
		// Prefix collision with a hand-edited SKU; start counting from 1 and
		// let the unique index catch real duplicates.
		return 1, nil
	}
	return n + 1, nil
}
