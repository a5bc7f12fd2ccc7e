//go:build unit
// +build unit

package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsm34/FlowRisk/internal/pkg/config"
	"github.com/vsm34/FlowRisk/internal/pkg/testutil"
)

func executeSimulate(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd := &cobra.Command{Use: "flowrisk-cli", SilenceUsage: true, SilenceErrors: true}
	require.NoError(t, InitSimulateCommands(rootCmd))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"simulate"}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func comfortableHousehold() map[string]any {
	return map[string]any{
		"profile": map[string]any{
			"monthly_income":    "10000",
			"fixed_expenses":    "2000",
			"variable_expenses": "500",
			"liquid_savings":    "50000",
			"debts": []map[string]any{
				{"name": "Car", "balance": "8000", "apr": "0.05", "min_payment": "250"},
			},
		},
	}
}

func TestSimulateCmd_BaselineNeverFails(t *testing.T) {
	path := testutil.WriteJSONFile(t, "baseline.json", comfortableHousehold())

	out, err := executeSimulate(t, "--input", path, "--horizon", "6", "--sims", "200", "--seed", "42")
	require.NoError(t, err)

	var result SimulationOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, int64(42), result.Seed)
	assert.Equal(t, 6, result.HorizonMonths)
	assert.Equal(t, 200, result.NSims)
	assert.Equal(t, 0.0, result.Summary.PFail)
	assert.Equal(t, 200, result.Summary.NSims)
	assert.Len(t, result.Chart.Months, 7)
	assert.InDelta(t, 0.05, result.Assumptions.SigmaIncome, 1e-9)
	assert.InDelta(t, 0.10, result.Assumptions.SigmaVariable, 1e-9)
}

func TestSimulateCmd_JobLossWithoutSavingsFails(t *testing.T) {
	input := map[string]any{
		"profile": map[string]any{
			"monthly_income":    "5000",
			"fixed_expenses":    "4000",
			"variable_expenses": "1000",
			"liquid_savings":    "0",
		},
		"scenario": map[string]any{
			"type": "job_loss",
			"parameters_json": map[string]any{
				"start_month":                  1,
				"duration_months":              3,
				"unemployment_replacement_pct": 0,
			},
		},
	}
	path := testutil.WriteJSONFile(t, "job_loss.json", input)

	out, err := executeSimulate(t, "--input", path, "--horizon", "6", "--sims", "100", "--seed", "7")
	require.NoError(t, err)

	var result SimulationOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1.0, result.Summary.PFail)
	assert.Equal(t, 100, result.Summary.NFailed)
}

func TestSimulateCmd_SameSeedSameOutput(t *testing.T) {
	path := testutil.WriteJSONFile(t, "baseline.json", comfortableHousehold())

	first, err := executeSimulate(t, "--input", path, "--sims", "100", "--seed", "123")
	require.NoError(t, err)
	second, err := executeSimulate(t, "--input", path, "--sims", "100", "--seed", "123")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSimulateCmd_AssumptionOverrides(t *testing.T) {
	input := comfortableHousehold()
	input["assumptions"] = map[string]any{"sigma_income": 0.0, "sigma_var": 0.2}
	path := testutil.WriteJSONFile(t, "overrides.json", input)

	out, err := executeSimulate(t, "--input", path, "--sims", "100", "--seed", "1")
	require.NoError(t, err)

	var result SimulationOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 0.0, result.Assumptions.SigmaIncome)
	assert.InDelta(t, 0.2, result.Assumptions.SigmaVariable, 1e-9)
}

func TestSimulateCmd_Errors(t *testing.T) {
	valid := testutil.WriteJSONFile(t, "baseline.json", comfortableHousehold())
	unknownScenario := comfortableHousehold()
	unknownScenario["scenario"] = map[string]any{"type": "meteor_strike"}
	unknown := testutil.WriteJSONFile(t, "unknown.json", unknownScenario)

	tests := []struct {
		name string
		args []string
	}{
		{"missing input flag", []string{"--sims", "100"}},
		{"missing input file", []string{"--input", filepath.Join(t.TempDir(), "absent.json")}},
		{"horizon out of range", []string{"--input", valid, "--horizon", "30"}},
		{"too few paths", []string{"--input", valid, "--sims", "50"}},
		{"seed below int32", []string{"--input", valid, "--seed", "-2147483649"}},
		{"unsupported scenario", []string{"--input", unknown, "--sims", "100"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeSimulate(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCLILoggerSettings(t *testing.T) {
	settings := cliLoggerSettings()

	require.NoError(t, settings.Validate())
	assert.Equal(t, config.LogTypeConsole, settings.LogType)
	assert.Equal(t, config.LogOutputStderr, settings.Output, "stdout carries command output only")
}
