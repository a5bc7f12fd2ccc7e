package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vsm34/FlowRisk/internal/domain/errs"
	"github.com/vsm34/FlowRisk/internal/domain/scenarios"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

// MsgScenarioNotFound is returned for unknown scenario ids
const MsgScenarioNotFound = "Scenario not found"

// scenarioService implements the ScenarioService interface
type scenarioService struct {
	scenarioRepo scenarios.ScenarioRepository
	logger       logger.Logger
}

// NewScenarioService creates a new instance of ScenarioService
func NewScenarioService(scenarioRepo scenarios.ScenarioRepository, logger logger.Logger) (scenarios.ScenarioService, error) {
	return &scenarioService{
		scenarioRepo: scenarioRepo,
		logger:       logger,
	}, nil
}

func (s *scenarioService) List(ctx context.Context, userID int64) ([]*scenarios.Scenario, error) {
	return s.scenarioRepo.ListByUserID(ctx, userID)
}

func (s *scenarioService) Create(ctx context.Context, userID int64, input *scenarios.ScenarioInput) (*scenarios.Scenario, error) {
	scenario := &scenarios.Scenario{
		UserID:     userID,
		Name:       input.Name,
		Type:       input.Type,
		Parameters: input.Parameters,
	}
	if scenario.Parameters == nil {
		scenario.Parameters = scenarios.Parameters{}
	}
	if err := scenario.Validate(); err != nil {
		return nil, errs.InvalidInput(err.Error(), err)
	}

	if err := s.scenarioRepo.Create(ctx, scenario); err != nil {
		return nil, fmt.Errorf("failed to create scenario: %w", err)
	}
	return scenario, nil
}

// Get returns a scenario owned by userID
func (s *scenarioService) Get(ctx context.Context, userID, scenarioID int64) (*scenarios.Scenario, error) {
	scenario, err := s.scenarioRepo.GetByID(ctx, scenarioID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.NotFound(MsgScenarioNotFound)
		}
		return nil, err
	}
	if scenario.UserID != userID {
		s.logger.Warn("Scenario access denied", "scenario_id", scenarioID, "user_id", userID)
		return nil, errs.Forbidden(MsgForbidden)
	}
	return scenario, nil
}

func (s *scenarioService) Update(ctx context.Context, userID, scenarioID int64, update *scenarios.ScenarioUpdate) (*scenarios.Scenario, error) {
	scenario, err := s.Get(ctx, userID, scenarioID)
	if err != nil {
		return nil, err
	}

	update.ApplyTo(scenario)
	if err := scenario.Validate(); err != nil {
		return nil, errs.InvalidInput(err.Error(), err)
	}

	if err := s.scenarioRepo.Update(ctx, scenario); err != nil {
		return nil, fmt.Errorf("failed to update scenario: %w", err)
	}
	return scenario, nil
}
