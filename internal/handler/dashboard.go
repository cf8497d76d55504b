package handler

import (
	"net/http"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/dto"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	var q dto.MovementQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), actorFrom(c), q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
