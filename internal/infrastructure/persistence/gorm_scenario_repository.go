package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vsm34/FlowRisk/internal/domain/errs"
	"github.com/vsm34/FlowRisk/internal/domain/scenarios"
	"github.com/vsm34/FlowRisk/internal/infrastructure/persistence/models"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

type gormScenarioRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormScenarioRepository creates a new GORM-based ScenarioRepository implementation
func NewGormScenarioRepository(db *gorm.DB, logger logger.Logger) (scenarios.ScenarioRepository, error) {
	return &gormScenarioRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormScenarioRepository) ListByUserID(ctx context.Context, userID int64) ([]*scenarios.Scenario, error) {
	var modelList []*models.ScenarioModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scenarios: %w", err)
	}

	domainList := make([]*scenarios.Scenario, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormScenarioRepository) GetByID(ctx context.Context, scenarioID int64) (*scenarios.Scenario, error) {
	var model models.ScenarioModel
	if err := r.db.WithContext(ctx).Where("id = ?", scenarioID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("scenario with ID %d: %w", scenarioID, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch scenario: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormScenarioRepository) Create(ctx context.Context, scenario *scenarios.Scenario) error {
	if err := scenario.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ScenarioModel{}
	model.FromDomain(scenario)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create scenario: %w", err)
	}

	*scenario = *model.ToDomain()
	r.logger.Info("Created scenario", "scenario_id", scenario.ID, "type", scenario.Type)
	return nil
}

func (r *gormScenarioRepository) Update(ctx context.Context, scenario *scenarios.Scenario) error {
	if err := scenario.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ScenarioModel{}
	model.FromDomain(scenario)
	model.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&models.ScenarioModel{ID: scenario.ID}).
		Select("name", "type", "parameters_json", "updated_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update scenario: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("scenario with ID %d: %w", scenario.ID, errs.ErrNotFound)
	}

	scenario.UpdatedAt = model.UpdatedAt
	r.logger.Info("Updated scenario", "scenario_id", scenario.ID)
	return nil
}
