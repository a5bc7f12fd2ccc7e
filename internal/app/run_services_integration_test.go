//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsm34/FlowRisk/internal/domain/errs"
	"github.com/vsm34/FlowRisk/internal/domain/runs"
	"github.com/vsm34/FlowRisk/internal/domain/scenarios"
)

func runRequest(seed int64, scenarioID *int64) *runs.RunRequest {
	req := runs.NewRunRequest()
	req.NSims = 200
	req.Seed = &seed
	req.ScenarioID = scenarioID
	return req
}

func TestRunService_Create(t *testing.T) {
	services := SetupTestServices(t, false)
	ctx := context.Background()
	alice := authenticate(t, services, "alice")
	bob := authenticate(t, services, "bob")

	_, err := services.RunService.Create(ctx, alice.ID, runRequest(7, nil))
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, MsgRunProfileNotFound, errs.PublicMessage(err, ""))

	_, err = services.ProfileService.Upsert(ctx, alice.ID, profileInput())
	require.NoError(t, err)

	t.Run("baseline run", func(t *testing.T) {
		run, err := services.RunService.Create(ctx, alice.ID, runRequest(7, nil))
		require.NoError(t, err)
		assert.NotZero(t, run.ID)
		assert.Equal(t, int64(7), run.Seed)
		assert.Equal(t, runs.Assumptions{SigmaIncome: 0.05, SigmaVariable: 0.1}, run.Assumptions)

		stored, result, err := services.RunService.Get(ctx, alice.ID, run.ID)
		require.NoError(t, err)
		assert.Equal(t, run.ID, stored.ID)
		assert.Equal(t, 200, result.Summary.NSims)
		assert.Len(t, result.Chart.Months, runs.DefaultHorizonMonths+1)
		for _, d := range result.Drivers {
			assert.NotEqual(t, "remove shock", d.Name)
		}
	})

	t.Run("same seed same result", func(t *testing.T) {
		first, err := services.RunService.Create(ctx, alice.ID, runRequest(99, nil))
		require.NoError(t, err)
		second, err := services.RunService.Create(ctx, alice.ID, runRequest(99, nil))
		require.NoError(t, err)

		_, r1, err := services.RunService.Get(ctx, alice.ID, first.ID)
		require.NoError(t, err)
		_, r2, err := services.RunService.Get(ctx, alice.ID, second.ID)
		require.NoError(t, err)
		assert.Equal(t, r1.Summary, r2.Summary)
		assert.Equal(t, r1.Chart, r2.Chart)
	})

	t.Run("random seed in range", func(t *testing.T) {
		req := runs.NewRunRequest()
		req.NSims = 100
		run, err := services.RunService.Create(ctx, alice.ID, req)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, run.Seed, int64(0))
		assert.LessOrEqual(t, run.Seed, int64(runs.MaxSeed))
	})

	t.Run("assumption overrides", func(t *testing.T) {
		req := runRequest(3, nil)
		req.Assumptions = map[string]any{"sigma_income": 0.0, "sigma_var": 0.25}
		run, err := services.RunService.Create(ctx, alice.ID, req)
		require.NoError(t, err)
		assert.Equal(t, runs.Assumptions{SigmaIncome: 0, SigmaVariable: 0.25}, run.Assumptions)
	})

	t.Run("scenario run", func(t *testing.T) {
		scenario, err := services.ScenarioService.Create(ctx, alice.ID, &scenarios.ScenarioInput{
			Name:       "Layoff",
			Type:       "job_loss",
			Parameters: scenarios.Parameters{"start_month": 1, "duration_months": 6},
		})
		require.NoError(t, err)

		run, err := services.RunService.Create(ctx, alice.ID, runRequest(11, &scenario.ID))
		require.NoError(t, err)
		require.NotNil(t, run.ScenarioID)

		_, result, err := services.RunService.Get(ctx, alice.ID, run.ID)
		require.NoError(t, err)
		var names []string
		for _, d := range result.Drivers {
			names = append(names, d.Name)
		}
		assert.Contains(t, names, "remove shock")

		_, err = services.RunService.Create(ctx, bob.ID, runRequest(11, &scenario.ID))
		assert.ErrorIs(t, err, errs.ErrNotFound, "bob has no profile")
	})

	t.Run("foreign scenario", func(t *testing.T) {
		_, err := services.ProfileService.Upsert(ctx, bob.ID, profileInput())
		require.NoError(t, err)
		foreign, err := services.ScenarioService.Create(ctx, alice.ID, &scenarios.ScenarioInput{Name: "Rent", Type: "rent_increase"})
		require.NoError(t, err)

		_, err = services.RunService.Create(ctx, bob.ID, runRequest(1, &foreign.ID))
		assert.ErrorIs(t, err, errs.ErrNotFound)
		assert.Equal(t, MsgRunScenarioNotFound, errs.PublicMessage(err, ""))
	})

	t.Run("invalid request", func(t *testing.T) {
		req := runRequest(1, nil)
		req.HorizonMonths = 25
		_, err := services.RunService.Create(ctx, alice.ID, req)
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	services.Recorder.mu.Lock()
	defer services.Recorder.mu.Unlock()
	require.NotEmpty(t, services.Recorder.runs)
	assert.Equal(t, recordedRun{ScenarioType: "baseline", Outcome: runs.OutcomeSuccess}, services.Recorder.runs[0])
}

func TestRunService_ListAndGetScoping(t *testing.T) {
	services := SetupTestServices(t, false)
	ctx := context.Background()
	alice := authenticate(t, services, "alice")
	bob := authenticate(t, services, "bob")

	_, err := services.ProfileService.Upsert(ctx, alice.ID, profileInput())
	require.NoError(t, err)

	first, err := services.RunService.Create(ctx, alice.ID, runRequest(1, nil))
	require.NoError(t, err)
	second, err := services.RunService.Create(ctx, alice.ID, runRequest(2, nil))
	require.NoError(t, err)

	list, err := services.RunService.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	_, _, err = services.RunService.Get(ctx, bob.ID, first.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, MsgRunNotFound, errs.PublicMessage(err, ""))
}
