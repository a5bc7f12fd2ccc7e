package runs

import (
	"context"
	"time"

	"github.com/vsm34/FlowRisk/internal/domain/profiles"
	"github.com/vsm34/FlowRisk/internal/domain/scenarios"
)

// Run outcomes reported to a RunRecorder
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// RunService launches and reads stress-test runs of the calling user.
type RunService interface {
	// Create simulates, analyses and persists a run, returning the stored run.
	Create(ctx context.Context, userID int64, request *RunRequest) (*Run, error)

	// List returns the caller's runs, newest first.
	List(ctx context.Context, userID int64) ([]*Run, error)

	// Get returns a run of the caller and its result.
	Get(ctx context.Context, userID, runID int64) (*Run, *Result, error)
}

// AnalysisInput is everything a stress test needs
type AnalysisInput struct {
	Profile       *profiles.FinancialProfile
	Scenario      *scenarios.Scenario
	HorizonMonths int
	NSims         int
	Seed          int64
	Assumptions   Assumptions
}

// Analysis is the outcome of a stress test
type Analysis struct {
	Summary Summary
	Chart   Chart
	Drivers []Driver
}

// Analyzer runs the Monte Carlo simulation, risk metrics and driver ranking
type Analyzer interface {
	Analyze(ctx context.Context, input *AnalysisInput) (*Analysis, error)
}

// RunRecorder receives run telemetry
type RunRecorder interface {
	RecordRun(ctx context.Context, scenarioType, outcome string, duration time.Duration)
}

// RunRepository defines the interface for Run and Result persistence
type RunRepository interface {
	// CreateWithResult stores a run and its result atomically, filling in their IDs
	CreateWithResult(ctx context.Context, run *Run, result *Result) error
	// ListByUserID lists the Runs of a user, newest first
	ListByUserID(ctx context.Context, userID int64) ([]*Run, error)
	// GetByIDForUser retrieves a Run owned by userID; errs.ErrNotFound otherwise
	GetByIDForUser(ctx context.Context, userID, runID int64) (*Run, error)
	// GetResultByRunID retrieves the Result of a Run; errs.ErrNotFound when absent
	GetResultByRunID(ctx context.Context, runID int64) (*Result, error)
}
