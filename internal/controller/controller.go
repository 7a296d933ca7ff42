// Package controller holds helpers shared by the admin and user handlers.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/dto"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/middleware"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/service"
	"github.com/rs/zerolog/log"
)

// ParseIDParam reads a positive integer path parameter. On failure it has
// already written a 400 response.
func ParseIDParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || val == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Kind:    service.KindValidation,
			Message: "Invalid " + name + " format",
		})
		return 0, false
	}
	return uint(val), true
}

// RequireUser returns the authenticated caller. On failure it has already
// written a 401 response.
func RequireUser(ctx *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Kind: "unauthorized", Message: "missing caller identity"})
		return "", false
	}
	return userID, true
}

// RequireCaller is RequireUser plus the admin role from the token.
func RequireCaller(ctx *gin.Context) (service.Caller, bool) {
	userID, ok := RequireUser(ctx)
	if !ok {
		return service.Caller{}, false
	}
	return service.Caller{UserID: userID, Admin: middleware.IsAdmin(ctx)}, true
}

// BindError reports a body that could not be decoded.
func BindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Kind:    service.KindValidation,
		Message: "Invalid request body",
		Details: []string{err.Error()},
	})
}

// RespondError maps a service error onto its HTTP status and body.
func RespondError(ctx *gin.Context, op string, err error) {
	status, body := errorResponse(err)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("op", op).Int("status", status).Str("kind", body.Kind).Msg("Request failed")
	ctx.JSON(status, body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	if service.IsNotFoundLike(err) {
		// ownership failures look exactly like missing resources
		var nf *service.NotFoundError
		resource := "assessment"
		if errors.As(err, &nf) {
			resource = nf.Resource
		}
		var az *service.AuthorizationError
		if errors.As(err, &az) {
			resource = az.Resource
		}
		return http.StatusNotFound, dto.ErrorResponse{Kind: service.KindNotFound, Message: resource + " not found"}
	}

	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, dto.ErrorResponse{Kind: service.KindValidation, Message: "Invalid request", Violations: ve.Violations}
	}
	var te *service.UpstreamTextExtractionError
	if errors.As(err, &te) {
		return http.StatusUnprocessableEntity, dto.ErrorResponse{Kind: service.KindTextExtraction, Message: "No usable resume text", Details: []string{te.Message}}
	}
	var se *service.ModelSchemaError
	if errors.As(err, &se) {
		return http.StatusBadGateway, dto.ErrorResponse{Kind: service.KindModelSchema, Message: "Model output was not usable", Violations: se.Violations}
	}
	var me *service.ModelCallError
	if errors.As(err, &me) {
		return http.StatusBadGateway, dto.ErrorResponse{Kind: service.KindModelCall, Message: "Model call failed"}
	}
	var pe *service.PersistenceError
	if errors.As(err, &pe) {
		return http.StatusInternalServerError, dto.ErrorResponse{Kind: service.KindPersistence, Message: "Storage failure"}
	}
	return http.StatusInternalServerError, dto.ErrorResponse{Kind: service.ErrorKind(err), Message: "Internal server error"}
}
