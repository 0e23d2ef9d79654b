package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"backoffice/internal/apierror"
	"backoffice/internal/dto"
	"backoffice/internal/middleware"
	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type SupplierHandler struct {
	svc service.SupplierService
}

func NewSupplierHandler(svc service.SupplierService) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

func (h *SupplierHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *SupplierHandler) Get(c *gin.Context) {
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

func (h *SupplierHandler) Create(c *gin.Context) {
	var req dto.CreateSupplierRequest
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

func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSupplierRequest
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

func (h *SupplierHandler) Delete(c *gin.Context) {
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

// Sync godoc
// @Summary Lance la synchronisation du flux produit d'un fournisseur
// @Tags suppliers
// @Accept json
// @Produce json
// @Success 202 {object} dto.ImportJobResponse
// @Failure 409 {object} apierror.ConflictError "Un import est déjà en cours"
// @Router /v1/suppliers/{id}/sync [post]
func (h *SupplierHandler) Sync(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	// Body is optional: a bare POST launches the sync without notification.
	var req dto.SyncSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, apierror.New("Corps de requête invalide"))
		return
	}
	if !validateStruct(c, &req) {
		return
	}
	job, err := h.svc.Sync(c.Request.Context(), id, middleware.ActorID(c), req.NotifyEmail)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, job)
}

// ImportJobs lists the most recent import jobs for one supplier.
func (h *SupplierHandler) ImportJobs(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	jobs, err := h.svc.ListImportJobs(c.Request.Context(), id, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}
