package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves the unauthenticated service endpoints
type SystemHandler interface {
	Root(ctx *gin.Context)
	Health(ctx *gin.Context)
}

type systemHandler struct{}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler() SystemHandler {
	return &systemHandler{}
}

// Root handles GET /
func (handler *systemHandler) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Welcome to FlowRisk API"})
}

// Health handles GET /health
func (handler *systemHandler) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
