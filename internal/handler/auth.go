package handler

import (
	"net/http"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/apierror"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/dto"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		// Credential failures map to 401 regardless of rejection kind so the
		// login endpoint never reveals whether the account exists.
		if _, ok := service.AsRejection(err); ok {
			c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
			return
		}
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req)
	if err != nil {
		if _, ok := service.AsRejection(err); ok {
			c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
			return
		}
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ctx := service.WithClientIP(c.Request.Context(), c.ClientIP())
	resp, err := h.svc.Register(ctx, actorFrom(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
