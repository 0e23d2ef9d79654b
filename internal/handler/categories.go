package handler

import (
	"net/http"

	"backoffice/internal/dto"
	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List godoc
// @Summary Liste plate des catégories (triée par sort_order puis nom)
// @Tags categories
// @Produce json
// @Param include_inactive query bool false "Inclure les catégories désactivées"
// @Success 200 {array} dto.CategoryResponse
// @Router /v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	items, err := h.svc.List(c.Request.Context(), includeInactive)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Tree godoc
// @Summary Arborescence complète des catégories
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryTreeResponse
// @Router /v1/categories/tree [get]
func (h *CategoryHandler) Tree(c *gin.Context) {
	forest, err := h.svc.Tree(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, forest)
}

// Create godoc
// @Summary Crée une catégorie (racine ou sous-catégorie)
// @Tags categories
// @Accept json
// @Produce json
// @Success 201 {object} dto.CategoryResponse
// @Failure 409 {object} apierror.ConflictError
// @Router /v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Supprime une catégorie sans enfants ni produits
// @Tags categories
// @Produce json
// @Success 204
// @Failure 409 {object} apierror.ConflictError
// @Router /v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Move reparents a category. A null parent_id moves it to the root level.
// Moving a category under its own descendant is rejected with a 409.
func (h *CategoryHandler) Move(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.MoveCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Move(c.Request.Context(), id, req.ParentID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reorder swaps the category with its previous/next sibling. At the edge of
// the sibling list the operation is a no-op, not an error.
func (h *CategoryHandler) Reorder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ReorderCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Reorder(c.Request.Context(), id, req.Direction); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
