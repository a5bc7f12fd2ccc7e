//go:build integration
// +build integration

package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vsm34/FlowRisk/internal/domain/profiles"
	"github.com/vsm34/FlowRisk/internal/domain/runs"
	"github.com/vsm34/FlowRisk/internal/domain/scenarios"
	"github.com/vsm34/FlowRisk/internal/domain/users"
	"github.com/vsm34/FlowRisk/internal/infrastructure/persistence"
	"github.com/vsm34/FlowRisk/internal/infrastructure/simulation"
	"github.com/vsm34/FlowRisk/internal/pkg/testutil"
)

// stubVerifier accepts "valid-<uid>" tokens
type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, idToken string) (*users.Identity, error) {
	switch {
	case idToken == "valid-no-uid":
		return &users.Identity{}, nil
	case len(idToken) > len("valid-") && idToken[:len("valid-")] == "valid-":
		return &users.Identity{UID: idToken[len("valid-"):]}, nil
	default:
		return nil, errors.New("token rejected")
	}
}

type recordedRun struct {
	ScenarioType string
	Outcome      string
}

// recordingRecorder keeps every RecordRun call
type recordingRecorder struct {
	mu   sync.Mutex
	runs []recordedRun
}

func (r *recordingRecorder) RecordRun(_ context.Context, scenarioType, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, recordedRun{ScenarioType: scenarioType, Outcome: outcome})
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	AuthService     users.AuthService
	ProfileService  profiles.ProfileService
	ScenarioService scenarios.ScenarioService
	RunService      runs.RunService

	Recorder  *recordingRecorder
	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services on an in-memory database
func SetupTestServices(t *testing.T, devBypass bool) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t)
	recorder := &recordingRecorder{}

	authService, err := NewAuthService(stubVerifier{}, dbContext.UserRepo, devBypass, logger)
	require.NoError(t, err, "Failed to create auth service")

	profileService, err := NewProfileService(dbContext.ProfileRepo, logger)
	require.NoError(t, err, "Failed to create profile service")

	scenarioService, err := NewScenarioService(dbContext.ScenarioRepo, logger)
	require.NoError(t, err, "Failed to create scenario service")

	runService, err := NewRunService(
		dbContext.ProfileRepo,
		dbContext.ScenarioRepo,
		dbContext.RunRepo,
		simulation.NewAnalyzer(logger),
		recorder,
		logger,
	)
	require.NoError(t, err, "Failed to create run service")

	return &TestServices{
		AuthService:     authService,
		ProfileService:  profileService,
		ScenarioService: scenarioService,
		RunService:      runService,
		Recorder:        recorder,
		DBContext:       dbContext,
	}
}
