package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"backoffice/internal/dto"
	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeBannerRepo struct {
	items map[uuid.UUID]*model.Banner
}

func newFakeBannerRepo() *fakeBannerRepo {
	return &fakeBannerRepo{items: map[uuid.UUID]*model.Banner{}}
}

func (r *fakeBannerRepo) add(b model.Banner) *model.Banner {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	cp := b
	r.items[cp.ID] = &cp
	return &cp
}

func (r *fakeBannerRepo) Create(_ context.Context, b *model.Banner) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	cp := *b
	r.items[b.ID] = &cp
	return nil
}

func (r *fakeBannerRepo) List(_ context.Context) ([]model.Banner, error) {
	out := make([]model.Banner, 0, len(r.items))
	for _, b := range r.items {
		out = append(out, *b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

func (r *fakeBannerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Banner, error) {
	b, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBannerRepo) Update(_ context.Context, b *model.Banner) error {
	if _, ok := r.items[b.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *b
	r.items[b.ID] = &cp
	return nil
}

func (r *fakeBannerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeBannerRepo) SwapSortOrder(_ context.Context, a, b *model.Banner) error {
	ra, ok := r.items[a.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rb, ok := r.items[b.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	ra.SortOrder, rb.SortOrder = rb.SortOrder, ra.SortOrder
	return nil
}

func (r *fakeBannerRepo) NextSortOrder(_ context.Context) (int, error) {
	max := -1
	for _, b := range r.items {
		if b.SortOrder > max {
			max = b.SortOrder
		}
	}
	return max + 1, nil
}

func banner(title string, sortOrder int) model.Banner {
	return model.Banner{Title: title, ImagePath: "/media/" + title + ".jpg", IsActive: true, SortOrder: sortOrder}
}

func TestBannerCreate_RejectsInvertedDates(t *testing.T) {
	svc := NewBannerService(newFakeBannerRepo())
	start := time.Now()
	end := start.Add(-time.Hour)

	_, err := svc.Create(context.Background(), dto.CreateBannerRequest{
		Title:     "Soldes",
		ImagePath: "/media/soldes.jpg",
		StartsAt:  &start,
		EndsAt:    &end,
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestBannerCreate_AppendsAtEnd(t *testing.T) {
	repo := newFakeBannerRepo()
	repo.add(banner("Première", 0))
	svc := NewBannerService(repo)

	resp, err := svc.Create(context.Background(), dto.CreateBannerRequest{
		Title:     "Seconde",
		ImagePath: "/media/seconde.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.SortOrder)
	assert.True(t, resp.Live, "unbounded active banner is live")
}

func TestBannerLive_WindowBounds(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	b := model.Banner{IsActive: true, StartsAt: &future}
	assert.False(t, b.Live(now), "not started yet")

	b = model.Banner{IsActive: true, EndsAt: &past}
	assert.False(t, b.Live(now), "already ended")

	b = model.Banner{IsActive: true, StartsAt: &past, EndsAt: &future}
	assert.True(t, b.Live(now))

	b = model.Banner{IsActive: false, StartsAt: &past, EndsAt: &future}
	assert.False(t, b.Live(now), "inactive wins over window")
}

func TestBannerReorder_Swap(t *testing.T) {
	repo := newFakeBannerRepo()
	first := repo.add(banner("Première", 0))
	second := repo.add(banner("Seconde", 1))
	svc := NewBannerService(repo)

	require.NoError(t, svc.Reorder(context.Background(), first.ID, MoveDown))

	a, _ := repo.FindByID(context.Background(), first.ID)
	b, _ := repo.FindByID(context.Background(), second.ID)
	assert.Equal(t, 1, a.SortOrder)
	assert.Equal(t, 0, b.SortOrder)
}

func TestBannerReorder_BoundaryNoop(t *testing.T) {
	repo := newFakeBannerRepo()
	last := repo.add(banner("Unique", 0))
	svc := NewBannerService(repo)

	require.NoError(t, svc.Reorder(context.Background(), last.ID, MoveDown))
	after, _ := repo.FindByID(context.Background(), last.ID)
	assert.Equal(t, 0, after.SortOrder)
}

func TestBannerUpdate_RejectsWindowInversionAcrossFields(t *testing.T) {
	repo := newFakeBannerRepo()
	start := time.Now()
	b := banner("Promo", 0)
	b.StartsAt = &start
	created := repo.add(b)
	svc := NewBannerService(repo)

	before := start.Add(-time.Hour)
	_, err := svc.Update(context.Background(), created.ID, dto.UpdateBannerRequest{EndsAt: &before})
	assert.ErrorIs(t, err, ErrInvalid)
}
