package handler

import (
	"net/http"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/dto"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/service"

	"github.com/gin-gonic/gin"
)

type EquipmentHandler struct{ svc service.CatalogService }

func NewEquipmentHandler(svc service.CatalogService) *EquipmentHandler {
	return &EquipmentHandler{svc: svc}
}

func (h *EquipmentHandler) Create(c *gin.Context) {
	var req dto.CreateEquipmentTypeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ctx := service.WithClientIP(c.Request.Context(), c.ClientIP())
	resp, err := h.svc.CreateEquipmentType(ctx, actorFrom(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EquipmentHandler) List(c *gin.Context) {
	resp, err := h.svc.ListEquipmentTypes(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
