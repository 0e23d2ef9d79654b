package service

import (
	"testing"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cat(name string, parentID *uuid.UUID, sortOrder int) model.Category {
	return model.Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      model.Slugify(name),
		ParentID:  parentID,
		IsActive:  true,
		SortOrder: sortOrder,
	}
}

func TestBuildTree_Empty(t *testing.T) {
	forest := BuildTree(nil)
	assert.Empty(t, forest)

	forest = BuildTree([]model.Category{})
	assert.Empty(t, forest)
}

func TestBuildTree_NestsThreeLevels(t *testing.T) {
	menu := cat("Jardin", nil, 0)
	sub := cat("Mobilier", &menu.ID, 0)
	leaf := cat("Chaises", &sub.ID, 0)

	// Input order deliberately child-first: the builder must not depend on it.
	forest := BuildTree([]model.Category{leaf, sub, menu})

	require.Len(t, forest, 1)
	assert.Equal(t, "Jardin", forest[0].Name)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, "Mobilier", forest[0].Children[0].Name)
	require.Len(t, forest[0].Children[0].Children, 1)
	assert.Equal(t, "Chaises", forest[0].Children[0].Children[0].Name)
}

func TestBuildTree_EveryCategoryAppearsOnce(t *testing.T) {
	a := cat("A", nil, 0)
	b := cat("B", &a.ID, 0)
	c := cat("C", &a.ID, 1)
	d := cat("D", &b.ID, 0)
	e := cat("E", nil, 1)
	input := []model.Category{a, b, c, d, e}

	forest := BuildTree(input)
	assert.Equal(t, len(input), CountNodes(forest))
}

func TestBuildTree_DanglingParentBecomesRoot(t *testing.T) {
	ghost := uuid.New()
	orphan := cat("Orpheline", &ghost, 0)
	root := cat("Racine", nil, 0)

	forest := BuildTree([]model.Category{orphan, root})

	require.Len(t, forest, 2)
	names := []string{forest[0].Name, forest[1].Name}
	assert.Contains(t, names, "Orpheline")
	assert.Contains(t, names, "Racine")
}

func TestBuildTree_SortsEveryLevel(t *testing.T) {
	root := cat("Racine", nil, 0)
	c3 := cat("Troisième", &root.ID, 2)
	c1 := cat("Première", &root.ID, 0)
	c2 := cat("Deuxième", &root.ID, 1)

	forest := BuildTree([]model.Category{c3, c1, root, c2})

	require.Len(t, forest, 1)
	children := forest[0].Children
	require.Len(t, children, 3)
	assert.Equal(t, "Première", children[0].Name)
	assert.Equal(t, "Deuxième", children[1].Name)
	assert.Equal(t, "Troisième", children[2].Name)
}

func TestBuildTree_TiesBreakOnName(t *testing.T) {
	b := cat("Bravo", nil, 5)
	a := cat("Alpha", nil, 5)
	c := cat("Charlie", nil, 5)

	forest := BuildTree([]model.Category{b, c, a})

	require.Len(t, forest, 3)
	assert.Equal(t, "Alpha", forest[0].Name)
	assert.Equal(t, "Bravo", forest[1].Name)
	assert.Equal(t, "Charlie", forest[2].Name)
}

func TestBuildTree_DoesNotMutateInput(t *testing.T) {
	root := cat("Racine", nil, 0)
	child := cat("Enfant", &root.ID, 0)
	input := []model.Category{child, root}

	BuildTree(input)

	assert.Equal(t, "Enfant", input[0].Name)
	assert.Equal(t, "Racine", input[1].Name)
}
