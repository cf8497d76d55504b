package handler

import (
	"net/http"
	"reflect"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/apierror"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/middleware"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindQuery binds query-string filters and runs their validator tags.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// actorFrom converts validated JWT claims into the service-layer actor and
// stashes the client IP in the request context for the audit trail.
func actorFrom(c *gin.Context) service.Actor {
	claims := middleware.GetClaims(c)
	actor := service.Actor{
		Username: claims.Username,
		Role:     claims.Role,
	}
	if id, err := uuid.Parse(claims.Subject); err == nil {
		actor.ID = id
	}
	if claims.BaseID != nil {
		if id, err := uuid.Parse(*claims.BaseID); err == nil {
			actor.BaseID = &id
		}
	}
	return actor
}

// writeServiceError maps service errors to HTTP responses. Business
// rejections carry their message verbatim; anything else is a storage
// failure logged internally and surfaced as an opaque 500.
func writeServiceError(c *gin.Context, err error) {
	if r, ok := service.AsRejection(err); ok {
		c.JSON(rejectionStatus(r.Kind), apierror.New(r.Message))
		return
	}
	log.Error().
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("path", c.FullPath()).
		Err(err).
		Msg("storage failure")
	c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
}

func rejectionStatus(kind service.RejectKind) int {
	switch kind {
	case service.RejectInvalidInput:
		return http.StatusBadRequest
	case service.RejectAccessDenied:
		return http.StatusForbidden
	case service.RejectNotFound:
		return http.StatusNotFound
	case service.RejectInsufficientInventory, service.RejectInvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
