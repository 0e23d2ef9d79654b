package handler

import (
	"net/http"
	"strconv"

	"backoffice/internal/apierror"
	"backoffice/internal/middleware"
	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	svc service.MediaService
}

func NewMediaHandler(svc service.MediaService) *MediaHandler {
	return &MediaHandler{svc: svc}
}

// Upload godoc
// @Summary Téléverse un fichier dans la médiathèque
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Fichier (image ou PDF)"
// @Success 201 {object} dto.MediaFileResponse
// @Failure 400 {object} apierror.APIError "Type refusé ou fichier trop volumineux"
// @Router /v1/media [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Aucun fichier fourni (champ « file » attendu)"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Fichier illisible"))
		return
	}
	defer f.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	resp, err := h.svc.Upload(c.Request.Context(), fileHeader.Filename, mimeType, fileHeader.Size, f, middleware.ActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MediaHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	resp, err := h.svc.List(c.Request.Context(), page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MediaHandler) Delete(c *gin.Context) {
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
