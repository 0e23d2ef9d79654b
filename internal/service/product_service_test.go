package service

import (
	"context"
	"errors"
	"testing"

	"backoffice/internal/dto"
	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductFixture() (*fakeProductRepo, *fakeCategoryRepo, *fakeHistoryRepo, ProductService) {
	products := newFakeProductRepo()
	categories := newFakeCategoryRepo()
	history := &fakeHistoryRepo{}
	svc := NewProductService(products, categories, history)
	return products, categories, history, svc
}

func TestProductCreate_SKUFromCategorySlug(t *testing.T) {
	_, categories, _, svc := newProductFixture()
	c := categories.add(cat("Meubles Jardin", nil, 0))

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Table pliante",
		CategoryID: &c.ID,
		Price:      decimal.NewFromFloat(79.90),
	})
	require.NoError(t, err)
	assert.Equal(t, "MEU-00001", resp.SKU)
	assert.Equal(t, "table-pliante", resp.Slug)
	assert.True(t, resp.IsActive)
}

func TestProductCreate_SequenceScopedPerPrefix(t *testing.T) {
	products, categories, _, svc := newProductFixture()
	c := categories.add(cat("Meubles", nil, 0))
	products.add(model.Product{SKU: "MEU-00041", Name: "Ancien"})
	products.add(model.Product{SKU: "LUM-00099", Name: "Autre famille"})

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Banc",
		CategoryID: &c.ID,
		Price:      decimal.NewFromInt(120),
	})
	require.NoError(t, err)
	assert.Equal(t, "MEU-00042", resp.SKU)
}

func TestProductCreate_NoCategoryUsesGenericPrefix(t *testing.T) {
	_, _, _, svc := newProductFixture()

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:  "Divers",
		Price: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "GEN-00001", resp.SKU)
}

func TestProductCreate_UnknownCategory(t *testing.T) {
	_, _, _, svc := newProductFixture()
	ghost := uuid.New()

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "X",
		CategoryID: &ghost,
		Price:      decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductUpdate_SKUChangeRecordsHistory(t *testing.T) {
	products, _, history, svc := newProductFixture()
	p := products.add(model.Product{SKU: "GEN-00001", Name: "Produit", IsActive: true})
	actor := uuid.New()

	newSKU := "GEN-99999"
	resp, err := svc.Update(context.Background(), p.ID, actor, dto.UpdateProductRequest{SKU: &newSKU})
	require.NoError(t, err)
	assert.Equal(t, newSKU, resp.SKU)

	require.Len(t, history.entries, 1)
	assert.Equal(t, "GEN-00001", history.entries[0].OldSKU)
	assert.Equal(t, newSKU, history.entries[0].NewSKU)
	assert.Equal(t, actor, history.entries[0].ChangedBy)
}

func TestProductUpdate_FailedUpdateLeavesNoHistory(t *testing.T) {
	products, _, history, svc := newProductFixture()
	p := products.add(model.Product{SKU: "GEN-00001", Name: "Produit", IsActive: true})
	products.updateErr = errors.New("connexion perdue")

	newSKU := "GEN-99999"
	_, err := svc.Update(context.Background(), p.ID, uuid.New(), dto.UpdateProductRequest{SKU: &newSKU})
	require.Error(t, err)
	assert.Empty(t, history.entries, "no history row for a change that was never persisted")

	after, err := products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "GEN-00001", after.SKU)
}

func TestProductUpdate_SameSKUNoHistory(t *testing.T) {
	products, _, history, svc := newProductFixture()
	p := products.add(model.Product{SKU: "GEN-00001", Name: "Produit", IsActive: true})

	same := "GEN-00001"
	_, err := svc.Update(context.Background(), p.ID, uuid.New(), dto.UpdateProductRequest{SKU: &same})
	require.NoError(t, err)
	assert.Empty(t, history.entries)
}

func TestProductUpdate_DuplicateSKURejected(t *testing.T) {
	products, _, _, svc := newProductFixture()
	products.add(model.Product{SKU: "GEN-00001", Name: "Premier"})
	p := products.add(model.Product{SKU: "GEN-00002", Name: "Second"})

	taken := "GEN-00001"
	_, err := svc.Update(context.Background(), p.ID, uuid.New(), dto.UpdateProductRequest{SKU: &taken})
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
}

func TestProductCodeHistory_ListsChanges(t *testing.T) {
	products, _, _, svc := newProductFixture()
	p := products.add(model.Product{SKU: "GEN-00001", Name: "Produit"})
	actor := uuid.New()

	for _, sku := range []string{"AAA-00001", "BBB-00001"} {
		s := sku
		_, err := svc.Update(context.Background(), p.ID, actor, dto.UpdateProductRequest{SKU: &s})
		require.NoError(t, err)
	}

	list, err := svc.CodeHistory(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "GEN-00001", list[0].OldSKU)
	assert.Equal(t, "AAA-00001", list[0].NewSKU)
	assert.Equal(t, "AAA-00001", list[1].OldSKU)
	assert.Equal(t, "BBB-00001", list[1].NewSKU)
}

func TestProductDeactivate(t *testing.T) {
	products, _, _, svc := newProductFixture()
	p := products.add(model.Product{SKU: "GEN-00001", Name: "Produit", IsActive: true})

	require.NoError(t, svc.Deactivate(context.Background(), p.ID))

	after, err := products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.False(t, after.IsActive)
}

func TestSkuPrefix(t *testing.T) {
	cases := map[string]string{
		"meubles-jardin": "MEU",
		"luminaires":     "LUM",
		"ab":             "GEN",
		"":               "GEN",
		"a-b-c":          "ABC",
	}
	for slug, want := range cases {
		assert.Equal(t, want, skuPrefix(slug), "slug %q", slug)
	}
}
