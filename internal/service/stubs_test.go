package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"backoffice/internal/dto"
	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They reproduce the ordering contracts the real
// gorm implementations provide (sort_order asc, ties by name) so the service
// tests exercise the same semantics without a database.

// ── categories ────────────────────────────────────────────────────────────────

type fakeCategoryRepo struct {
	items map[uuid.UUID]*model.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{items: map[uuid.UUID]*model.Category{}}
}

func (r *fakeCategoryRepo) add(c model.Category) *model.Category {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := c
	r.items[cp.ID] = &cp
	return &cp
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, *c)
	}
	sortCategories(out)
	return out, nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*model.Category, error) {
	for _, c := range r.items {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCategoryRepo) FindByNameAndParent(_ context.Context, name string, parentID *uuid.UUID) (*model.Category, error) {
	for _, c := range r.items {
		if c.Name == name && sameParent(c.ParentID, parentID) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *model.Category) error {
	if _, ok := r.items[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeCategoryRepo) Siblings(_ context.Context, parentID *uuid.UUID) ([]model.Category, error) {
	out := make([]model.Category, 0)
	for _, c := range r.items {
		if sameParent(c.ParentID, parentID) {
			out = append(out, *c)
		}
	}
	sortCategories(out)
	return out, nil
}

func (r *fakeCategoryRepo) SwapSortOrder(_ context.Context, a, b *model.Category) error {
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

func (r *fakeCategoryRepo) NextSortOrder(_ context.Context, parentID *uuid.UUID) (int, error) {
	max := -1
	for _, c := range r.items {
		if sameParent(c.ParentID, parentID) && c.SortOrder > max {
			max = c.SortOrder
		}
	}
	return max + 1, nil
}

func (r *fakeCategoryRepo) CountChildren(_ context.Context, id uuid.UUID) (int64, error) {
	var n int64
	for _, c := range r.items {
		if c.ParentID != nil && *c.ParentID == id {
			n++
		}
	}
	return n, nil
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sortCategories(list []model.Category) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].SortOrder != list[j].SortOrder {
			return list[i].SortOrder < list[j].SortOrder
		}
		return list[i].Name < list[j].Name
	})
}

// ── products ──────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	items     map[uuid.UUID]*model.Product
	updateErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{items: map[uuid.UUID]*model.Product{}}
}

func (r *fakeProductRepo) add(p model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := p
	r.items[cp.ID] = &cp
	return &cp
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.items {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) FindBySupplierRef(_ context.Context, supplierID uuid.UUID, ref string) (*model.Product, error) {
	for _, p := range r.items {
		if p.SupplierID != nil && *p.SupplierID == supplierID && p.SupplierRef != nil && *p.SupplierRef == ref {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) Search(_ context.Context, _ dto.ProductListQuery) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.items[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.IsActive = false
	return nil
}

func (r *fakeProductRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.items {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) CountBySupplier(_ context.Context, supplierID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.items {
		if p.SupplierID != nil && *p.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) NextSKUSequence(_ context.Context, prefix string) (int, error) {
	max := 0
	for _, p := range r.items {
		if !strings.HasPrefix(p.SKU, prefix) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(p.SKU, prefix)); err == nil && n > max {
			max = n
		}
	}
	return max + 1, nil
}

// ── code history ──────────────────────────────────────────────────────────────

type fakeHistoryRepo struct {
	entries []model.CodeHistory
}

func (r *fakeHistoryRepo) Create(_ context.Context, h *model.CodeHistory) error {
	r.entries = append(r.entries, *h)
	return nil
}

func (r *fakeHistoryRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]model.CodeHistory, error) {
	out := make([]model.CodeHistory, 0)
	for _, h := range r.entries {
		if h.ProductID == productID {
			out = append(out, h)
		}
	}
	return out, nil
}

// ── orders ────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	items map[uuid.UUID]*model.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{items: map[uuid.UUID]*model.Order{}}
}

func (r *fakeOrderRepo) add(o model.Order) *model.Order {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	cp := o
	r.items[cp.ID] = &cp
	return &cp
}

func (r *fakeOrderRepo) Create(_ context.Context, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	cp := *o
	r.items[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) Search(_ context.Context, _ dto.OrderListQuery) ([]model.Order, int64, error) {
	out := make([]model.Order, 0, len(r.items))
	for _, o := range r.items {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	o, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

// ── users ─────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	items map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{items: map[uuid.UUID]*model.User{}}
}

func (r *fakeUserRepo) add(u model.User) *model.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := u
	r.items[cp.ID] = &cp
	return &cp
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	out := make([]model.User, 0, len(r.items))
	for _, u := range r.items {
		if !includeInactive && !u.IsActive {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := r.items[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsActive = false
	return nil
}
