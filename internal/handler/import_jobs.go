package handler

import (
	"net/http"

	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type ImportJobHandler struct {
	svc service.SupplierService
}

func NewImportJobHandler(svc service.SupplierService) *ImportJobHandler {
	return &ImportJobHandler{svc: svc}
}

// Get is polled by the import page while a synchronization runs.
func (h *ImportJobHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	job, err := h.svc.GetImportJob(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Cancel godoc
// @Summary Demande l'annulation d'un import en cours
// @Tags imports
// @Produce json
// @Success 202
// @Failure 409 {object} apierror.ConflictError "L'import est déjà terminé"
// @Router /v1/import-jobs/{id}/cancel [post]
func (h *ImportJobHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.CancelImport(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}
