//go:build unit
// +build unit

package simulation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsm34/FlowRisk/internal/domain/runs"
)

func TestQuantile(t *testing.T) {
	data := []float64{4, 1, 3, 2}

	assert.InDelta(t, 1.3, Quantile(data, 0.10), 1e-9)
	assert.InDelta(t, 2.5, Quantile(data, 0.50), 1e-9)
	assert.InDelta(t, 3.7, Quantile(data, 0.90), 1e-9)
	assert.Equal(t, 1.0, Quantile(data, 0))
	assert.Equal(t, 4.0, Quantile(data, 1))
	assert.Equal(t, []float64{4, 1, 3, 2}, data, "input must not be reordered")

	assert.Equal(t, 0.0, Quantile(nil, 0.5))
	assert.Equal(t, 7.5, Quantile([]float64{7.5}, 0.9))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.1235, Round(0.12345678, 4))
	assert.Equal(t, 2.5, Round(2.4999999, 2))
	assert.Equal(t, -1.24, Round(-1.2371, 2))
	assert.Equal(t, 3.0, Round(2.5, 0))
}

func TestComputeSummary_AllFailing(t *testing.T) {
	in := noVolatility(Inputs{MonthlyIncome: 100, FixedExpenses: 5000, DebtMinPayment: 50})

	res, err := Simulate(context.Background(), in, 3, 100, 5)
	require.NoError(t, err)

	summary, chart := ComputeSummary(res)

	assert.Equal(t, 1.0, summary.PFail)
	assert.Equal(t, 100, summary.NFailed)
	assert.Equal(t, 100, summary.NSims)
	assert.Equal(t, runs.TimeToFailStats{P10: 1, P50: 1, P90: 1, Median: 1}, summary.TimeToFail)
	assert.Equal(t, runs.QuantileStats{}, summary.MinCash)
	assert.Equal(t, 0.0, summary.AvgDebtPayment, "failed months record no payment")

	assert.Equal(t, []int{0, 1, 2, 3}, chart.Months)
	assert.Equal(t, []float64{0, 0, 0, 0}, chart.CashP50)
}

func TestComputeSummary_Surviving(t *testing.T) {
	in := noVolatility(Inputs{MonthlyIncome: 3000, FixedExpenses: 1000, LiquidSavings: 1000, DebtMinPayment: 123.456})

	res, err := Simulate(context.Background(), in, 2, 100, 5)
	require.NoError(t, err)

	summary, chart := ComputeSummary(res)

	assert.Equal(t, 0.0, summary.PFail)
	assert.Equal(t, runs.TimeToFailStats{}, summary.TimeToFail)
	assert.Equal(t, 1000.0, summary.MinCash.P50)
	assert.Equal(t, 123.46, summary.AvgDebtPayment)
	assert.Equal(t, []float64{1000, 2876.54, 4753.09}, chart.CashP10)
	assert.Equal(t, chart.CashP10, chart.CashP90)
}

func TestComputeSummary_PartialFailure(t *testing.T) {
	res := &Result{
		CashPaths:     [][]float64{{100, 50}, {100, 0}, {100, 150}, {100, 0}},
		Failed:        []bool{false, true, false, true},
		TimeToFail:    []int{0, 1, 0, 1},
		MinCash:       []float64{50, 100, 100, 100},
		DebtPayments:  [][]float64{{10}, {0}, {20}, {0}},
		HorizonMonths: 1,
		NSims:         4,
	}

	summary, chart := ComputeSummary(res)

	assert.Equal(t, 0.5, summary.PFail)
	assert.Equal(t, 2, summary.NFailed)
	assert.Equal(t, 15.0, summary.AvgDebtPayment)
	assert.InDelta(t, 65.0, summary.MinCash.P10, 1e-9)
	assert.Equal(t, []float64{100, 100, 100}, []float64{chart.CashP10[0], chart.CashP50[0], chart.CashP90[0]})
	assert.Equal(t, 25.0, chart.CashP50[1])
}
