package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vsm34/FlowRisk/internal/domain/profiles"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

// ProfileHandler defines the interface for handling profile and debt operations
type ProfileHandler interface {
	Get(ctx *gin.Context)
	Upsert(ctx *gin.Context)
	CreateDebt(ctx *gin.Context)
	DeleteDebt(ctx *gin.Context)
}

type profileHandler struct {
	profileService profiles.ProfileService
	logger         logger.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService profiles.ProfileService, logger logger.Logger) ProfileHandler {
	return &profileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// Get handles GET /v1/profile
func (handler *profileHandler) Get(ctx *gin.Context) {
	profile, err := handler.profileService.Get(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, NewProfileResponse(profile))
}

// Upsert handles POST /v1/profile
func (handler *profileHandler) Upsert(ctx *gin.Context) {
	var request ProfileUpsertRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondUnprocessable(ctx, err)
		return
	}

	userID := currentUser(ctx).ID
	if _, err := handler.profileService.Upsert(ctx.Request.Context(), userID, request.ToInput()); err != nil {
		respondError(ctx, handler.logger, err)
		return
	}

	// Reload so the response lists the profile's debts.
	profile, err := handler.profileService.Get(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, NewProfileResponse(profile))
}

// CreateDebt handles POST /v1/profile/debts
func (handler *profileHandler) CreateDebt(ctx *gin.Context) {
	var request DebtCreateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondUnprocessable(ctx, err)
		return
	}

	debt, err := handler.profileService.AddDebt(ctx.Request.Context(), currentUser(ctx).ID, request.ToInput())
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, NewDebtResponse(debt))
}

// DeleteDebt handles DELETE /v1/profile/debts/:debt_id
func (handler *profileHandler) DeleteDebt(ctx *gin.Context) {
	debtID, err := strconv.ParseInt(ctx.Param("debt_id"), 10, 64)
	if err != nil {
		respondUnprocessable(ctx, err)
		return
	}

	if err := handler.profileService.DeleteDebt(ctx.Request.Context(), currentUser(ctx).ID, debtID); err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
