package service

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/dto"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MoveUp / MoveDown are the two directions of a sibling reorder.
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// CategoryService covers the categories admin page: flat list, derived tree,
// CRUD, drag-and-drop reparenting and up/down sibling moves.
type CategoryService interface {
	List(ctx context.Context, includeInactive bool) ([]dto.CategoryResponse, error)
	Tree(ctx context.Context) ([]dto.CategoryTreeResponse, error)
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Move reparents a category. A nil newParentID targets the root level.
	// Moving a category under itself is a no-op; moving it under one of its
	// descendants is rejected as a cycle.
	Move(ctx context.Context, id uuid.UUID, newParentID *uuid.UUID) error
	// Reorder swaps the category's sort_order with its previous (up) or next
	// (down) sibling. Already at the boundary is a no-op.
	Reorder(ctx context.Context, id uuid.UUID, direction string) error
}

type categoryService struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
	cache       *CategoryCache
}

func NewCategoryService(repo repository.CategoryRepository, productRepo repository.ProductRepository, cache *CategoryCache) CategoryService {
	return &categoryService{repo: repo, productRepo: productRepo, cache: cache}
}

func mapCategory(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ParentID:    c.ParentID,
		IsActive:    c.IsActive,
		SortOrder:   c.SortOrder,
	}
}

func mapTree(nodes []*CategoryNode) []dto.CategoryTreeResponse {
	out := make([]dto.CategoryTreeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.CategoryTreeResponse{
			CategoryResponse: mapCategory(n.Category),
			Children:         mapTree(n.Children),
		})
	}
	return out
}

// listAll reads the full flat list through the cache.
func (s *categoryService) listAll(ctx context.Context) ([]model.Category, error) {
	if cached, ok := s.cache.Get(); ok {
		return cached, nil
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Put(list)
	return list, nil
}

func (s *categoryService) List(ctx context.Context, includeInactive bool) ([]dto.CategoryResponse, error) {
	list, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		if !includeInactive && !c.IsActive {
			continue
		}
		out = append(out, mapCategory(c))
	}
	return out, nil
}

// Tree returns the full forest, inactive categories included — the admin
// tree view shows them greyed out with their toggle.
func (s *categoryService) Tree(ctx context.Context) ([]dto.CategoryTreeResponse, error) {
	list, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapTree(BuildTree(list)), nil
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if req.ParentID != nil {
		if _, err := s.repo.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w : catégorie parente", ErrNotFound)
			}
			return nil, err
		}
	}

	existing, err := s.repo.FindByNameAndParent(ctx, req.Name, req.ParentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, conflict("une catégorie porte déjà ce nom à ce niveau")
	}

	slug, err := s.uniqueSlug(ctx, model.Slugify(req.Name), uuid.Nil)
	if err != nil {
		return nil, err
	}
	sortOrder, err := s.repo.NextSortOrder(ctx, req.ParentID)
	if err != nil {
		return nil, err
	}

	c := &model.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		ParentID:    req.ParentID,
		IsActive:    true,
		SortOrder:   sortOrder,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	resp := mapCategory(*c)
	return &resp, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w : catégorie", ErrNotFound)
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != c.Name {
		existing, err := s.repo.FindByNameAndParent(ctx, *req.Name, c.ParentID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, conflict("une catégorie porte déjà ce nom à ce niveau")
		}
		slug, err := s.uniqueSlug(ctx, model.Slugify(*req.Name), id)
		if err != nil {
			return nil, err
		}
		c.Name = *req.Name
		c.Slug = slug
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	resp := mapCategory(*c)
	return &resp, nil
}

// Delete removes a category after both guards pass: no child category may
// reference it and no product may use it. Both are checked before the
// destructive call, so a rejection never leaves a partial mutation.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w : catégorie", ErrNotFound)
		}
		return err
	}

	children, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return conflictCount("impossible de supprimer : la catégorie a des sous-catégories", int(children))
	}

	inUse, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return conflictCount(fmt.Sprintf("impossible de supprimer : la catégorie est utilisée par %d produit(s)", inUse), int(inUse))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *categoryService) Move(ctx context.Context, id uuid.UUID, newParentID *uuid.UUID) error {
	// Dropping a category onto itself: explicit no-op before any other work.
	if newParentID != nil && *newParentID == id {
		return nil
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w : catégorie", ErrNotFound)
		}
		return err
	}

	if newParentID != nil {
		target, err := s.repo.FindByID(ctx, *newParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w : catégorie cible", ErrNotFound)
			}
			return err
		}
		// Walk the target's ancestor chain; finding the moved id means the
		// target is a descendant and the move would create a cycle.
		for cur := target; ; {
			if cur.ID == id {
				return conflict("déplacement impossible : une catégorie ne peut pas devenir l'enfant de sa propre descendance")
			}
			if cur.ParentID == nil {
				break
			}
			parent, err := s.repo.FindByID(ctx, *cur.ParentID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Dangling parent reference: the chain ends here, same
					// tolerance as BuildTree.
					break
				}
				return err
			}
			cur = parent
		}
	}

	sortOrder, err := s.repo.NextSortOrder(ctx, newParentID)
	if err != nil {
		return err
	}
	c.ParentID = newParentID
	c.SortOrder = sortOrder
	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *categoryService) Reorder(ctx context.Context, id uuid.UUID, direction string) error {
	if direction != MoveUp && direction != MoveDown {
		return fmt.Errorf("%w : direction inconnue", ErrInvalid)
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w : catégorie", ErrNotFound)
		}
		return err
	}

	siblings, err := s.repo.Siblings(ctx, c.ParentID)
	if err != nil {
		return err
	}

	idx := -1
	for i := range siblings {
		if siblings[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w : catégorie", ErrNotFound)
	}

	j := idx - 1
	if direction == MoveDown {
		j = idx + 1
	}
	if j < 0 || j >= len(siblings) {
		return nil // already at the boundary
	}

	if err := s.repo.SwapSortOrder(ctx, &siblings[idx], &siblings[j]); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// uniqueSlug appends -2, -3, … until the slug is free. excludeID skips the
// row being renamed.
func (s *categoryService) uniqueSlug(ctx context.Context, base string, excludeID uuid.UUID) (string, error) {
	if base == "" {
		base = "categorie"
	}
	slug := base
	for i := 2; ; i++ {
		existing, err := s.repo.FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return slug, nil
			}
			return "", err
		}
		if existing.ID == excludeID {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
