package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vsm34/FlowRisk/internal/domain/errs"
	"github.com/vsm34/FlowRisk/internal/domain/runs"
	"github.com/vsm34/FlowRisk/internal/infrastructure/persistence/models"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

type gormRunRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormRunRepository creates a new GORM-based RunRepository implementation
func NewGormRunRepository(db *gorm.DB, logger logger.Logger) (runs.RunRepository, error) {
	return &gormRunRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormRunRepository) CreateWithResult(ctx context.Context, run *runs.Run, result *runs.Result) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	runModel := &models.StressTestRunModel{}
	runModel.FromDomain(run)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(runModel).Error; err != nil {
			return fmt.Errorf("failed to create run: %w", err)
		}

		result.RunID = runModel.ID
		resultModel := &models.StressTestResultModel{}
		resultModel.FromDomain(result)

		if err := tx.Create(resultModel).Error; err != nil {
			return fmt.Errorf("failed to create run result: %w", err)
		}

		result.ID = resultModel.ID
		result.CreatedAt = resultModel.CreatedAt
		return nil
	})
	if err != nil {
		return err
	}

	*run = *runModel.ToDomain()
	r.logger.Info("Created stress test run", "run_id", run.ID, "user_id", run.UserID)
	return nil
}

func (r *gormRunRepository) ListByUserID(ctx context.Context, userID int64) ([]*runs.Run, error) {
	var modelList []*models.StressTestRunModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	domainList := make([]*runs.Run, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormRunRepository) GetByIDForUser(ctx context.Context, userID, runID int64) (*runs.Run, error) {
	var model models.StressTestRunModel
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", runID, userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("run with ID %d: %w", runID, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch run: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormRunRepository) GetResultByRunID(ctx context.Context, runID int64) (*runs.Result, error) {
	var model models.StressTestResultModel
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("result of run %d: %w", runID, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch run result: %w", err)
	}
	return model.ToDomain(), nil
}
