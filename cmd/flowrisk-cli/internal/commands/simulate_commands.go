package commands

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vsm34/FlowRisk/internal/domain/profiles"
	"github.com/vsm34/FlowRisk/internal/domain/runs"
	"github.com/vsm34/FlowRisk/internal/domain/scenarios"
	"github.com/vsm34/FlowRisk/internal/infrastructure/simulation"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

// SimulationFile is the JSON document read by the simulate command
type SimulationFile struct {
	Profile     ProfileFile    `json:"profile"`
	Scenario    *ScenarioFile  `json:"scenario,omitempty"`
	Assumptions map[string]any `json:"assumptions,omitempty"`
}

// ProfileFile holds the cash-flow figures of a simulated household
type ProfileFile struct {
	MonthlyIncome    decimal.Decimal  `json:"monthly_income"`
	SigmaIncome      *decimal.Decimal `json:"sigma_income,omitempty"`
	FixedExpenses    decimal.Decimal  `json:"fixed_expenses"`
	VariableExpenses decimal.Decimal  `json:"variable_expenses"`
	SigmaVariable    *decimal.Decimal `json:"sigma_variable,omitempty"`
	LiquidSavings    decimal.Decimal  `json:"liquid_savings"`
	Debts            []DebtFile       `json:"debts,omitempty"`
}

// DebtFile is one debt of a simulated household
type DebtFile struct {
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	APR        decimal.Decimal `json:"apr"`
	MinPayment decimal.Decimal `json:"min_payment"`
}

// ScenarioFile is the shock applied to the simulation
type ScenarioFile struct {
	Name       string         `json:"name,omitempty"`
	Type       string         `json:"type"`
	Parameters map[string]any `json:"parameters_json,omitempty"`
}

// SimulationOutput is the JSON document printed by the simulate command
type SimulationOutput struct {
	Seed          int64            `json:"seed"`
	HorizonMonths int              `json:"horizon_months"`
	NSims         int              `json:"n_sims"`
	Assumptions   runs.Assumptions `json:"assumptions"`
	Summary       runs.Summary     `json:"summary"`
	Chart         runs.Chart       `json:"chart"`
	Drivers       []runs.Driver    `json:"drivers"`
}

func (f *ProfileFile) toProfile() *profiles.FinancialProfile {
	input := profiles.ProfileInput{
		MonthlyIncome:    f.MonthlyIncome,
		SigmaIncome:      f.SigmaIncome,
		FixedExpenses:    f.FixedExpenses,
		VariableExpenses: f.VariableExpenses,
		SigmaVariable:    f.SigmaVariable,
		LiquidSavings:    f.LiquidSavings,
	}

	profile := &profiles.FinancialProfile{}
	input.ApplyTo(profile)

	for _, d := range f.Debts {
		profile.Debts = append(profile.Debts, &profiles.Debt{
			Name:       d.Name,
			Balance:    d.Balance,
			APR:        d.APR,
			MinPayment: d.MinPayment,
		})
	}
	return profile
}

func (f *ScenarioFile) toScenario() *scenarios.Scenario {
	if f == nil {
		return nil
	}
	params := scenarios.Parameters(f.Parameters)
	if params == nil {
		params = scenarios.Parameters{}
	}
	return &scenarios.Scenario{Name: f.Name, Type: f.Type, Parameters: params}
}

// SimulateCommandHandler runs offline stress tests
type SimulateCommandHandler struct {
	analyzer runs.Analyzer
	logger   logger.Logger
}

// NewSimulateCommandHandler initializes a SimulateCommandHandler with a logger and the Monte Carlo analyzer
func NewSimulateCommandHandler() (*SimulateCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &SimulateCommandHandler{
		analyzer: simulation.NewAnalyzer(loggerInstance),
		logger:   loggerInstance,
	}, nil
}

// SimulateCmd reads a profile file, runs the stress test and prints the result as JSON
func (commandHandler *SimulateCommandHandler) SimulateCmd(cmd *cobra.Command, _ []string) error {
	inputPath, err := cmd.Flags().GetString("input")
	if err != nil {
		return fmt.Errorf("invalid input flag: %w", err)
	}
	horizon, err := cmd.Flags().GetInt("horizon")
	if err != nil {
		return fmt.Errorf("invalid horizon flag: %w", err)
	}
	nSims, err := cmd.Flags().GetInt("sims")
	if err != nil {
		return fmt.Errorf("invalid sims flag: %w", err)
	}

	request := runs.NewRunRequest()
	request.HorizonMonths = horizon
	request.NSims = nSims
	if cmd.Flags().Changed("seed") {
		seed, err := cmd.Flags().GetInt64("seed")
		if err != nil {
			return fmt.Errorf("invalid seed flag: %w", err)
		}
		request.Seed = &seed
	}

	content, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var file SimulationFile
	if err := json.Unmarshal(content, &file); err != nil {
		return fmt.Errorf("failed to parse input file: %w", err)
	}
	request.Assumptions = file.Assumptions

	if err := request.Validate(); err != nil {
		return err
	}

	seed := rand.Int64N(runs.MaxSeed + 1)
	if request.Seed != nil {
		seed = *request.Seed
	}

	profile := file.Profile.toProfile()
	assumptions, err := runs.ResolveAssumptions(request.Assumptions,
		profile.SigmaIncome.InexactFloat64(), profile.SigmaVariable.InexactFloat64())
	if err != nil {
		return err
	}

	analysis, err := commandHandler.analyzer.Analyze(cmd.Context(), &runs.AnalysisInput{
		Profile:       profile,
		Scenario:      file.Scenario.toScenario(),
		HorizonMonths: request.HorizonMonths,
		NSims:         request.NSims,
		Seed:          seed,
		Assumptions:   assumptions,
	})
	if err != nil {
		return err
	}

	drivers := analysis.Drivers
	if drivers == nil {
		drivers = []runs.Driver{}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(SimulationOutput{
		Seed:          seed,
		HorizonMonths: request.HorizonMonths,
		NSims:         request.NSims,
		Assumptions:   assumptions,
		Summary:       analysis.Summary,
		Chart:         analysis.Chart,
		Drivers:       drivers,
	})
}

// InitSimulateCommands registers the simulate command
func InitSimulateCommands(rootCmd *cobra.Command) error {
	handler, err := NewSimulateCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create simulate command handler %w", err)
	}

	var simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Run an offline stress test from a JSON profile file",
		Args:  cobra.NoArgs,
		RunE:  handler.SimulateCmd,
	}
	simulateCmd.Flags().StringP("input", "i", "", "Path to the JSON file holding profile, scenario and assumptions")
	simulateCmd.Flags().IntP("horizon", "", runs.DefaultHorizonMonths, "Simulation horizon in months (1-24)")
	simulateCmd.Flags().IntP("sims", "", runs.DefaultNSims, "Number of simulated paths (100-5000)")
	simulateCmd.Flags().Int64P("seed", "", 0, "Random seed; a random one is drawn when omitted")
	if err := simulateCmd.MarkFlagRequired("input"); err != nil {
		return err
	}

	rootCmd.AddCommand(simulateCmd)
	return nil
}
