package handler

import (
	"net/http"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/dto"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) List(c *gin.Context) {
	var q dto.MovementQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.ListBalances(c.Request.Context(), actorFrom(c), q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetBalance(c.Request.Context(), actorFrom(c), c.Param("baseId"), c.Param("equipmentTypeId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
