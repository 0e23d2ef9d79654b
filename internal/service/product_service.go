package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/dto"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductService covers the products admin page. SKUs are generated here on
// creation; manual SKU edits are recorded in the code history so old labels
// stay traceable.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, q dto.ProductListQuery) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	CodeHistory(ctx context.Context, productID uuid.UUID) ([]dto.CodeHistoryResponse, error)
}

type productService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	historyRepo  repository.CodeHistoryRepository
}

func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, historyRepo repository.CodeHistoryRepository) ProductService {
	return &productService{repo: repo, categoryRepo: categoryRepo, historyRepo: historyRepo}
}

func mapProduct(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		CategoryID:     p.CategoryID,
		SupplierID:     p.SupplierID,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		Stock:          p.Stock,
		ImagePath:      p.ImagePath,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
	}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	prefix := "GEN"
	if req.CategoryID != nil {
		cat, err := s.categoryRepo.FindByID(ctx, *req.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w : catégorie", ErrNotFound)
			}
			return nil, err
		}
		prefix = skuPrefix(cat.Slug)
	}

	sku, err := s.generateSKU(ctx, prefix)
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		SKU:            sku,
		Name:           req.Name,
		Slug:           model.Slugify(req.Name),
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		SupplierID:     req.SupplierID,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		Stock:          req.Stock,
		ImagePath:      req.ImagePath,
		IsActive:       true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := mapProduct(*p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w : produit", ErrNotFound)
		}
		return nil, err
	}
	resp := mapProduct(*p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	list, total, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, mapProduct(p))
	}
	page, perPage := q.Page, q.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}
	return &dto.ProductListResponse{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w : produit", ErrNotFound)
		}
		return nil, err
	}

	oldSKU := p.SKU
	if req.SKU != nil && *req.SKU != p.SKU {
		existing, err := s.repo.FindBySKU(ctx, *req.SKU)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, conflict("ce SKU est déjà utilisé par un autre produit")
		}
		p.SKU = *req.SKU
	}
	if req.Name != nil {
		p.Name = *req.Name
		p.Slug = model.Slugify(*req.Name)
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.CategoryID != nil {
		p.CategoryID = req.CategoryID
	}
	if req.SupplierID != nil {
		p.SupplierID = req.SupplierID
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.CompareAtPrice != nil {
		p.CompareAtPrice = req.CompareAtPrice
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.ImagePath != nil {
		p.ImagePath = req.ImagePath
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	// The history row is written only once the update is persisted, so a
	// failed update never leaves a phantom SKU change behind.
	if p.SKU != oldSKU {
		if err := s.historyRepo.Create(ctx, &model.CodeHistory{
			ProductID: p.ID,
			OldSKU:    oldSKU,
			NewSKU:    p.SKU,
			ChangedBy: actorID,
		}); err != nil {
			return nil, err
		}
	}
	resp := mapProduct(*p)
	return &resp, nil
}

func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w : produit", ErrNotFound)
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productService) CodeHistory(ctx context.Context, productID uuid.UUID) ([]dto.CodeHistoryResponse, error) {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w : produit", ErrNotFound)
		}
		return nil, err
	}
	list, err := s.historyRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CodeHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.CodeHistoryResponse{
			OldSKU:    h.OldSKU,
			NewSKU:    h.NewSKU,
			ChangedBy: h.ChangedBy,
			ChangedAt: h.CreatedAt,
		})
	}
	return out, nil
}

// skuPrefix derives a 3-letter uppercase prefix from a category slug:
// "meubles-jardin" → "MEU".
func skuPrefix(slug string) string {
	letters := make([]rune, 0, 3)
	for _, r := range slug {
		if r >= 'a' && r <= 'z' {
			letters = append(letters, r)
			if len(letters) == 3 {
				break
			}
		}
	}
	if len(letters) < 3 {
		return "GEN"
	}
	return strings.ToUpper(string(letters))
}

// generateSKU produces "PREFIX-00042" style codes, sequence scoped per prefix.
func (s *productService) generateSKU(ctx context.Context, prefix string) (string, error) {
	seq, err := s.repo.NextSKUSequence(ctx, prefix+"-")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%05d", prefix, seq), nil
}
