package controller

import (
	"errors"
	"net/http"

	"pfolio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognised is logged and reported as 500.
func handleServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrValidation),
		errors.Is(err, util.ErrInvalidProofType),
		errors.Is(err, util.ErrUnknownTab),
		errors.Is(err, util.ErrInvalidRole):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrProofTooLarge):
		util.Error(ctx, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, util.ErrSessionNotFound):
		util.Unauthorized(ctx)
	case errors.Is(err, util.ErrNotTeacher), errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrEmailRegistered):
		util.Error(ctx, http.StatusConflict, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
