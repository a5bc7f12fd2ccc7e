package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MsgDevEndpointsDisabled is returned by development endpoints while the bypass flag is unset
const MsgDevEndpointsDisabled = "Dev endpoints only available when FLOWRISK_DEV_BYPASS_AUTH=true"

// UserHandler defines the interface for handling caller identity endpoints
type UserHandler interface {
	Me(ctx *gin.Context)
	WhoAmI(ctx *gin.Context)
}

type userHandler struct {
	devEndpoints bool
	environment  string
}

// NewUserHandler creates a new UserHandler. devEndpoints enables GET /v1/dev/whoami.
func NewUserHandler(devEndpoints bool, environment string) UserHandler {
	return &userHandler{
		devEndpoints: devEndpoints,
		environment:  environment,
	}
}

// Me handles GET /v1/me
func (handler *userHandler) Me(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, newMeResponse(currentUser(ctx)))
}

// WhoAmI handles GET /v1/dev/whoami
func (handler *userHandler) WhoAmI(ctx *gin.Context) {
	if !handler.devEndpoints {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Detail: MsgDevEndpointsDisabled})
		return
	}

	user := currentUser(ctx)
	ctx.JSON(http.StatusOK, WhoAmIResponse{
		Message:     "DEV BYPASS AUTH ACTIVE",
		UserID:      user.ID,
		FirebaseUID: user.FirebaseUID,
		Environment: handler.environment,
	})
}
