package handler

import (
	"net/http"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/dto"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/service"

	"github.com/gin-gonic/gin"
)

type BasesHandler struct{ svc service.CatalogService }

func NewBasesHandler(svc service.CatalogService) *BasesHandler { return &BasesHandler{svc: svc} }

func (h *BasesHandler) Create(c *gin.Context) {
	var req dto.CreateBaseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ctx := service.WithClientIP(c.Request.Context(), c.ClientIP())
	resp, err := h.svc.CreateBase(ctx, actorFrom(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BasesHandler) Update(c *gin.Context) {
	var req dto.UpdateBaseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ctx := service.WithClientIP(c.Request.Context(), c.ClientIP())
	resp, err := h.svc.UpdateBase(ctx, actorFrom(c), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BasesHandler) Delete(c *gin.Context) {
	ctx := service.WithClientIP(c.Request.Context(), c.ClientIP())
	if err := h.svc.DeleteBase(ctx, actorFrom(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BasesHandler) List(c *gin.Context) {
	resp, err := h.svc.ListBases(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
