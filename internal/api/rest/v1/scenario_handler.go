package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vsm34/FlowRisk/internal/domain/scenarios"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

// ScenarioHandler defines the interface for handling scenario operations
type ScenarioHandler interface {
	List(ctx *gin.Context)
	Create(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
}

type scenarioHandler struct {
	scenarioService scenarios.ScenarioService
	logger          logger.Logger
}

// NewScenarioHandler creates a new ScenarioHandler
func NewScenarioHandler(scenarioService scenarios.ScenarioService, logger logger.Logger) ScenarioHandler {
	return &scenarioHandler{
		scenarioService: scenarioService,
		logger:          logger,
	}
}

// List handles GET /v1/scenarios
func (handler *scenarioHandler) List(ctx *gin.Context) {
	list, err := handler.scenarioService.List(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}

	listResponse := make([]ScenarioResponse, 0, len(list))
	for _, scenario := range list {
		listResponse = append(listResponse, NewScenarioResponse(scenario))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// Create handles POST /v1/scenarios
func (handler *scenarioHandler) Create(ctx *gin.Context) {
	var request ScenarioCreateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondUnprocessable(ctx, err)
		return
	}

	scenario, err := handler.scenarioService.Create(ctx.Request.Context(), currentUser(ctx).ID, request.ToInput())
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, NewScenarioResponse(scenario))
}

// GetByID handles GET /v1/scenarios/:scenario_id
func (handler *scenarioHandler) GetByID(ctx *gin.Context) {
	scenarioID, err := strconv.ParseInt(ctx.Param("scenario_id"), 10, 64)
	if err != nil {
		respondUnprocessable(ctx, err)
		return
	}

	scenario, err := handler.scenarioService.Get(ctx.Request.Context(), currentUser(ctx).ID, scenarioID)
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, NewScenarioResponse(scenario))
}

// Update handles PUT /v1/scenarios/:scenario_id
func (handler *scenarioHandler) Update(ctx *gin.Context) {
	scenarioID, err := strconv.ParseInt(ctx.Param("scenario_id"), 10, 64)
	if err != nil {
		respondUnprocessable(ctx, err)
		return
	}

	var request ScenarioUpdateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondUnprocessable(ctx, err)
		return
	}

	scenario, err := handler.scenarioService.Update(ctx.Request.Context(), currentUser(ctx).ID, scenarioID, request.ToUpdate())
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, NewScenarioResponse(scenario))
}
