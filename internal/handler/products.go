package handler

import (
	"net/http"

	"backoffice/internal/apierror"
	"backoffice/internal/dto"
	"backoffice/internal/middleware"
	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	svc service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List godoc
// @Summary Recherche paginée de produits
// @Tags products
// @Produce json
// @Param search query string false "Recherche sur nom et SKU"
// @Param category_id query string false "Filtre par catégorie"
// @Param supplier_id query string false "Filtre par fournisseur"
// @Param page query int false "Page (défaut 1)"
// @Param per_page query int false "Taille de page (défaut 25, max 100)"
// @Success 200 {object} dto.ProductListResponse
// @Router /v1/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var q dto.ProductListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Paramètres de recherche invalides"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Crée un produit (SKU généré si absent)
// @Tags products
// @Accept json
// @Produce json
// @Success 201 {object} dto.ProductResponse
// @Failure 409 {object} apierror.ConflictError
// @Router /v1/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
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

// Update records a code history entry when the SKU changes, attributed to the
// authenticated user.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, middleware.ActorID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CodeHistory godoc
// @Summary Historique des changements de SKU d'un produit
// @Tags products
// @Produce json
// @Success 200 {array} dto.CodeHistoryResponse
// @Router /v1/products/{id}/code-history [get]
func (h *ProductHandler) CodeHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	items, err := h.svc.CodeHistory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
