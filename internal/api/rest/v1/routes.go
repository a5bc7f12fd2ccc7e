package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/vsm34/FlowRisk/internal/domain/profiles"
	"github.com/vsm34/FlowRisk/internal/domain/runs"
	"github.com/vsm34/FlowRisk/internal/domain/scenarios"
	"github.com/vsm34/FlowRisk/internal/domain/users"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

// RouteSettings carries the non-service inputs of SetupRoutes
type RouteSettings struct {
	Environment string
	// DevEndpoints mirrors FLOWRISK_DEV_BYPASS_AUTH regardless of the environment
	DevEndpoints bool
	// RunLimiter throttles POST /v1/runs; nil disables throttling
	RunLimiter *rate.Limiter
	// Metrics is served on GET /metrics when set
	Metrics http.Handler
}

// SetupRoutes sets up the service endpoints and all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	authService users.AuthService,
	profileService profiles.ProfileService,
	scenarioService scenarios.ScenarioService,
	runService runs.RunService,
	settings RouteSettings,
	log logger.Logger) {

	systemHandler := NewSystemHandler()
	r.GET("/", systemHandler.Root)
	r.GET("/health", systemHandler.Health)
	if settings.Metrics != nil {
		r.GET("/metrics", gin.WrapH(settings.Metrics))
	}

	v1 := r.Group(BasePath) // lookup in version file
	v1.Use(AuthMiddleware(authService, log))

	// User Routes
	userHandler := NewUserHandler(settings.DevEndpoints || authService.DevBypassActive(), settings.Environment)
	v1.GET("/me", userHandler.Me)
	v1.GET("/dev/whoami", userHandler.WhoAmI)

	// Profile Routes
	profileHandler := NewProfileHandler(profileService, log)
	v1.GET("/profile", profileHandler.Get)
	v1.POST("/profile", profileHandler.Upsert)
	v1.POST("/profile/debts", profileHandler.CreateDebt)
	v1.DELETE("/profile/debts/:debt_id", profileHandler.DeleteDebt)

	// Scenario Routes
	scenarioHandler := NewScenarioHandler(scenarioService, log)
	v1.GET("/scenarios", scenarioHandler.List)
	v1.POST("/scenarios", scenarioHandler.Create)
	v1.GET("/scenarios/:scenario_id", scenarioHandler.GetByID)
	v1.PUT("/scenarios/:scenario_id", scenarioHandler.Update)

	// Run Routes
	runHandler := NewRunHandler(runService, log)
	createRun := []gin.HandlerFunc{runHandler.Create}
	if settings.RunLimiter != nil {
		createRun = append([]gin.HandlerFunc{RateLimitMiddleware(settings.RunLimiter)}, createRun...)
	}
	v1.POST("/runs", createRun...)
	v1.GET("/runs", runHandler.List)
	v1.GET("/runs/:run_id", runHandler.GetByID)
}
