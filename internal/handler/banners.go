package handler

import (
	"net/http"

	"backoffice/internal/dto"
	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type BannerHandler struct {
	svc service.BannerService
}

func NewBannerHandler(svc service.BannerService) *BannerHandler {
	return &BannerHandler{svc: svc}
}

func (h *BannerHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *BannerHandler) Create(c *gin.Context) {
	var req dto.CreateBannerRequest
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

func (h *BannerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBannerRequest
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

func (h *BannerHandler) Delete(c *gin.Context) {
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

func (h *BannerHandler) Reorder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ReorderBannerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Reorder(c.Request.Context(), id, req.Direction); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
