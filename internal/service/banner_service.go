package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/dto"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BannerService covers the home-page banners admin page. Reordering reuses
// the same swap mechanics as categories: one transaction, two sort_order
// values exchanged.
type BannerService interface {
	Create(ctx context.Context, req dto.CreateBannerRequest) (*dto.BannerResponse, error)
	List(ctx context.Context) ([]dto.BannerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateBannerRequest) (*dto.BannerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, id uuid.UUID, direction string) error
}

type bannerService struct {
	repo repository.BannerRepository
}

func NewBannerService(repo repository.BannerRepository) BannerService {
	return &bannerService{repo: repo}
}

func mapBanner(b model.Banner) dto.BannerResponse {
	return dto.BannerResponse{
		ID:        b.ID,
		Title:     b.Title,
		ImagePath: b.ImagePath,
		LinkURL:   b.LinkURL,
		StartsAt:  b.StartsAt,
		EndsAt:    b.EndsAt,
		IsActive:  b.IsActive,
		SortOrder: b.SortOrder,
		Live:      b.Live(time.Now()),
	}
}

func (s *bannerService) Create(ctx context.Context, req dto.CreateBannerRequest) (*dto.BannerResponse, error) {
	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return nil, fmt.Errorf("%w : la date de fin précède la date de début", ErrInvalid)
	}

	sortOrder, err := s.repo.NextSortOrder(ctx)
	if err != nil {
		return nil, err
	}

	b := &model.Banner{
		Title:     req.Title,
		ImagePath: req.ImagePath,
		LinkURL:   req.LinkURL,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		IsActive:  true,
		SortOrder: sortOrder,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	resp := mapBanner(*b)
	return &resp, nil
}

func (s *bannerService) List(ctx context.Context) ([]dto.BannerResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BannerResponse, 0, len(list))
	for _, b := range list {
		out = append(out, mapBanner(b))
	}
	return out, nil
}

func (s *bannerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateBannerRequest) (*dto.BannerResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w : bannière", ErrNotFound)
		}
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.ImagePath != nil {
		b.ImagePath = *req.ImagePath
	}
	if req.LinkURL != nil {
		b.LinkURL = req.LinkURL
	}
	if req.StartsAt != nil {
		b.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		b.EndsAt = req.EndsAt
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if b.StartsAt != nil && b.EndsAt != nil && b.EndsAt.Before(*b.StartsAt) {
		return nil, fmt.Errorf("%w : la date de fin précède la date de début", ErrInvalid)
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	resp := mapBanner(*b)
	return &resp, nil
}

func (s *bannerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w : bannière", ErrNotFound)
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *bannerService) Reorder(ctx context.Context, id uuid.UUID, direction string) error {
	if direction != MoveUp && direction != MoveDown {
		return fmt.Errorf("%w : direction inconnue", ErrInvalid)
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range list {
		if list[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w : bannière", ErrNotFound)
	}

	j := idx - 1
	if direction == MoveDown {
		j = idx + 1
	}
	if j < 0 || j >= len(list) {
		return nil
	}
	return s.repo.SwapSortOrder(ctx, &list[idx], &list[j])
}
