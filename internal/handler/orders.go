package handler

import (
	"net/http"

	"backoffice/internal/apierror"
	"backoffice/internal/dto"
	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// List godoc
// @Summary Recherche paginée de commandes
// @Tags orders
// @Produce json
// @Param status query string false "Filtre par statut"
// @Param search query string false "Recherche sur numéro et client"
// @Success 200 {object} dto.OrderListResponse
// @Router /v1/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var q dto.OrderListQuery
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

func (h *OrderHandler) Get(c *gin.Context) {
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

// UpdateStatus godoc
// @Summary Fait avancer une commande dans son cycle de vie
// @Tags orders
// @Accept json
// @Produce json
// @Success 200 {object} dto.OrderResponse
// @Failure 409 {object} apierror.ConflictError "Transition interdite"
// @Router /v1/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Invoice generates (or regenerates) the PDF invoice and streams it back.
func (h *OrderHandler) Invoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	path, err := h.svc.InvoicePDF(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.FileAttachment(path, "facture.pdf")
}
