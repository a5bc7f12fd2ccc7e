package simulation

import (
	"context"
	"fmt"

	"github.com/vsm34/FlowRisk/internal/domain/profiles"
	"github.com/vsm34/FlowRisk/internal/domain/runs"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

type analyzer struct {
	logger logger.Logger
}

// NewAnalyzer creates the Monte Carlo implementation of runs.Analyzer
func NewAnalyzer(logger logger.Logger) runs.Analyzer {
	return &analyzer{logger: logger}
}

func (a *analyzer) Analyze(ctx context.Context, input *runs.AnalysisInput) (*runs.Analysis, error) {
	if input == nil || input.Profile == nil {
		return nil, fmt.Errorf("analysis requires a financial profile")
	}

	shock, err := NewShock(input.Scenario)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	in := InputsFromProfile(input.Profile, input.Assumptions, shock)

	result, err := Simulate(ctx, in, input.HorizonMonths, input.NSims, input.Seed)
	if err != nil {
		return nil, fmt.Errorf("simulation failed: %w", err)
	}

	summary, chart := ComputeSummary(result)

	drivers, err := rankDrivers(ctx, in, result)
	if err != nil {
		return nil, fmt.Errorf("driver analysis failed: %w", err)
	}

	a.logger.Debug("Stress test analysed",
		"horizon_months", input.HorizonMonths,
		"n_sims", input.NSims,
		"seed", input.Seed,
		"p_fail", summary.PFail,
	)

	return &runs.Analysis{
		Summary: summary,
		Chart:   chart,
		Drivers: drivers,
	}, nil
}

// InputsFromProfile converts a profile and its debts to simulation inputs
func InputsFromProfile(p *profiles.FinancialProfile, assumptions runs.Assumptions, shock *Shock) Inputs {
	return Inputs{
		MonthlyIncome:    p.MonthlyIncome.InexactFloat64(),
		FixedExpenses:    p.FixedExpenses.InexactFloat64(),
		VariableExpenses: p.VariableExpenses.InexactFloat64(),
		LiquidSavings:    p.LiquidSavings.InexactFloat64(),
		DebtMinPayment:   p.TotalMinPayment().InexactFloat64(),
		Assumptions:      assumptions,
		Shock:            shock,
	}
}
