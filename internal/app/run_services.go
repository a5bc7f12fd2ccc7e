package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/vsm34/FlowRisk/internal/domain/errs"
	"github.com/vsm34/FlowRisk/internal/domain/profiles"
	"github.com/vsm34/FlowRisk/internal/domain/runs"
	"github.com/vsm34/FlowRisk/internal/domain/scenarios"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
	"github.com/vsm34/FlowRisk/internal/pkg/validators"
)

// Messages returned by the run service
const (
	MsgRunProfileNotFound  = "Profile not found. Create a financial profile first."
	MsgRunScenarioNotFound = "Scenario not found or does not belong to user."
	MsgRunComputation      = "Run computation failed. Please check your inputs and try again."
	MsgRunNotFound         = "Run not found"
	MsgResultNotFound      = "Result not found"
)

// runService implements the RunService interface
type runService struct {
	profileRepo  profiles.ProfileRepository
	scenarioRepo scenarios.ScenarioRepository
	runRepo      runs.RunRepository
	analyzer     runs.Analyzer
	recorder     runs.RunRecorder
	logger       logger.Logger
	newSeed      func() int64
}

// NewRunService creates a new instance of RunService. recorder may be nil.
func NewRunService(
	profileRepo profiles.ProfileRepository,
	scenarioRepo scenarios.ScenarioRepository,
	runRepo runs.RunRepository,
	analyzer runs.Analyzer,
	recorder runs.RunRecorder,
	logger logger.Logger,
) (runs.RunService, error) {
	return &runService{
		profileRepo:  profileRepo,
		scenarioRepo: scenarioRepo,
		runRepo:      runRepo,
		analyzer:     analyzer,
		recorder:     recorder,
		logger:       logger,
		newSeed:      randomSeed,
	}, nil
}

func randomSeed() int64 {
	return rand.Int64N(runs.MaxSeed + 1)
}

// Create simulates the caller's profile under the requested scenario and stores the run with its result
func (s *runService) Create(ctx context.Context, userID int64, request *runs.RunRequest) (*runs.Run, error) {
	if err := request.Validate(); err != nil {
		return nil, errs.InvalidInput(err.Error(), err)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.NotFound(MsgRunProfileNotFound)
		}
		return nil, err
	}

	var scenario *scenarios.Scenario
	scenarioType := validators.ScenarioTypeBaseline
	if request.ScenarioID != nil {
		scenario, err = s.scenarioRepo.GetByID(ctx, *request.ScenarioID)
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		if scenario == nil || scenario.UserID != userID {
			return nil, errs.NotFound(MsgRunScenarioNotFound)
		}
		scenarioType = scenario.Type
	}

	seed := s.newSeed()
	if request.Seed != nil {
		seed = *request.Seed
	}

	assumptions, err := runs.ResolveAssumptions(request.Assumptions,
		profile.SigmaIncome.InexactFloat64(), profile.SigmaVariable.InexactFloat64())
	if err != nil {
		return nil, errs.InvalidInput(err.Error(), err)
	}

	start := time.Now()
	analysis, err := s.analyzer.Analyze(ctx, &runs.AnalysisInput{
		Profile:       profile,
		Scenario:      scenario,
		HorizonMonths: request.HorizonMonths,
		NSims:         request.NSims,
		Seed:          seed,
		Assumptions:   assumptions,
	})
	if err != nil {
		s.logger.Error("Run computation failed", "user_id", userID, "seed", seed, "error", err)
		s.record(ctx, scenarioType, runs.OutcomeFailure, time.Since(start))
		return nil, errs.Internal(MsgRunComputation, err)
	}

	run := &runs.Run{
		UserID:        userID,
		ScenarioID:    request.ScenarioID,
		HorizonMonths: request.HorizonMonths,
		NSims:         request.NSims,
		Seed:          seed,
		Assumptions:   assumptions,
	}
	result := &runs.Result{
		Summary: analysis.Summary,
		Drivers: analysis.Drivers,
		Chart:   analysis.Chart,
	}
	if err := s.runRepo.CreateWithResult(ctx, run, result); err != nil {
		s.record(ctx, scenarioType, runs.OutcomeFailure, time.Since(start))
		return nil, fmt.Errorf("failed to store run: %w", err)
	}

	elapsed := time.Since(start)
	s.record(ctx, scenarioType, runs.OutcomeSuccess, elapsed)
	s.logger.Info("Stress test run completed",
		"run_id", run.ID,
		"user_id", userID,
		"scenario_type", scenarioType,
		"seed", seed,
		"p_fail", analysis.Summary.PFail,
		"duration_ms", elapsed.Milliseconds(),
	)
	return run, nil
}

func (s *runService) record(ctx context.Context, scenarioType, outcome string, duration time.Duration) {
	if s.recorder != nil {
		s.recorder.RecordRun(ctx, scenarioType, outcome, duration)
	}
}

func (s *runService) List(ctx context.Context, userID int64) ([]*runs.Run, error) {
	return s.runRepo.ListByUserID(ctx, userID)
}

// Get returns a run of the caller with its result. Runs of other users are reported as missing.
func (s *runService) Get(ctx context.Context, userID, runID int64) (*runs.Run, *runs.Result, error) {
	run, err := s.runRepo.GetByIDForUser(ctx, userID, runID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil, errs.NotFound(MsgRunNotFound)
		}
		return nil, nil, err
	}

	result, err := s.runRepo.GetResultByRunID(ctx, run.ID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil, errs.NotFound(MsgResultNotFound)
		}
		return nil, nil, err
	}
	return run, result, nil
}
