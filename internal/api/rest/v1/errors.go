package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsm34/FlowRisk/internal/domain/errs"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

// Generic messages for failures without a domain message
const (
	MsgInternalError   = "Internal server error"
	MsgTooManyRequests = "Too many requests"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// statusFor maps a domain error kind to an HTTP status code
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the caller-facing message of err. Server errors are logged with their cause.
func respondError(ctx *gin.Context, log logger.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError && log != nil {
		log.Error("Request failed", "method", ctx.Request.Method, "path", ctx.FullPath(), "error", err)
	}
	ctx.AbortWithStatusJSON(status, ErrorResponse{Detail: errs.PublicMessage(err, MsgInternalError)})
}

// respondUnprocessable writes a 422 for a malformed or invalid request
func respondUnprocessable(ctx *gin.Context, err error) {
	ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: err.Error()})
}
