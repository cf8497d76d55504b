package handler

import (
	"net/http"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/dto"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/service"

	"github.com/gin-gonic/gin"
)

type AssignmentsHandler struct{ svc service.AssignmentService }

func NewAssignmentsHandler(svc service.AssignmentService) *AssignmentsHandler {
	return &AssignmentsHandler{svc: svc}
}

func (h *AssignmentsHandler) Create(c *gin.Context) {
	var req dto.RecordAssignmentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ctx := service.WithClientIP(c.Request.Context(), c.ClientIP())
	resp, err := h.svc.RecordAssignment(ctx, actorFrom(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AssignmentsHandler) List(c *gin.Context) {
	var q dto.MovementQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.ListAssignments(c.Request.Context(), actorFrom(c), q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
