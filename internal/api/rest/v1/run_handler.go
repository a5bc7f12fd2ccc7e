package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vsm34/FlowRisk/internal/domain/runs"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

// RunHandler defines the interface for handling stress-test runs
type RunHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
}

type runHandler struct {
	runService runs.RunService
	logger     logger.Logger
}

// NewRunHandler creates a new RunHandler
func NewRunHandler(runService runs.RunService, logger logger.Logger) RunHandler {
	return &runHandler{
		runService: runService,
		logger:     logger,
	}
}

// Create handles POST /v1/runs
func (handler *runHandler) Create(ctx *gin.Context) {
	request := NewRunCreateRequest()
	if err := ctx.ShouldBindJSON(request); err != nil {
		respondUnprocessable(ctx, err)
		return
	}

	run, err := handler.runService.Create(ctx.Request.Context(), currentUser(ctx).ID, request.ToRunRequest())
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, RunCreateResponse{RunID: run.ID})
}

// List handles GET /v1/runs
func (handler *runHandler) List(ctx *gin.Context) {
	list, err := handler.runService.List(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}

	listResponse := make([]RunListItem, 0, len(list))
	for _, run := range list {
		listResponse = append(listResponse, NewRunListItem(run))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID handles GET /v1/runs/:run_id
func (handler *runHandler) GetByID(ctx *gin.Context) {
	runID, err := strconv.ParseInt(ctx.Param("run_id"), 10, 64)
	if err != nil {
		respondUnprocessable(ctx, err)
		return
	}

	run, result, err := handler.runService.Get(ctx.Request.Context(), currentUser(ctx).ID, runID)
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, NewRunResultResponse(run, result))
}
