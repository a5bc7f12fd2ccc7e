package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/vsm34/FlowRisk/internal/domain/users"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

// Context keys and headers used by the middlewares
const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	currentUserKey  = "current_user"
	unmatchedRoute  = "unmatched"
)

// HTTPRecorder receives one observation per served request
type HTTPRecorder interface {
	RecordHTTPRequest(ctx context.Context, method, route string, status int)
}

// RequestIDMiddleware propagates the caller's X-Request-ID or assigns a new one
func RequestIDMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Set(requestIDKey, requestID)
		ctx.Header(RequestIDHeader, requestID)
		ctx.Next()
	}
}

// RequestLoggerMiddleware logs every request once it has been served
func RequestLoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		args := []any{
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"request_id", ctx.GetString(requestIDKey),
		}
		switch status := ctx.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Error("Request served", args...)
		case status >= http.StatusBadRequest:
			log.Warn("Request served", args...)
		default:
			log.Info("Request served", args...)
		}
	}
}

// MetricsMiddleware records each request by its route template
func MetricsMiddleware(recorder HTTPRecorder) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		recorder.RecordHTTPRequest(ctx.Request.Context(), ctx.Request.Method, route, ctx.Writer.Status())
	}
}

// AuthMiddleware resolves the caller from the Authorization header and rejects anonymous requests
func AuthMiddleware(authService users.AuthService, log logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := authService.Authenticate(ctx.Request.Context(), ctx.GetHeader("Authorization"))
		if err != nil {
			respondError(ctx, log, err)
			return
		}
		ctx.Set(currentUserKey, user)
		ctx.Next()
	}
}

// currentUser returns the user stored by AuthMiddleware
func currentUser(ctx *gin.Context) *users.User {
	if v, ok := ctx.Get(currentUserKey); ok {
		if user, ok := v.(*users.User); ok {
			return user
		}
	}
	return nil
}

// RateLimitMiddleware rejects requests beyond the limiter's rate with 429
func RateLimitMiddleware(limiter *rate.Limiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !limiter.Allow() {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Detail: MsgTooManyRequests})
			return
		}
		ctx.Next()
	}
}
