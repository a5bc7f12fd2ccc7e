package simulation

import (
	"math"
	"sort"

	"github.com/vsm34/FlowRisk/internal/domain/runs"
)

// Quantile returns the p-quantile of data by linear interpolation between closest ranks
// (index p*(n-1)). It returns 0 for empty data and leaves data unmodified.
func Quantile(data []float64, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	if n == 1 {
		return sorted[0]
	}

	idx := p * float64(n-1)
	lower := int(idx)
	upper := min(lower+1, n-1)
	weight := idx - float64(lower)

	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Round rounds x to places decimal places, halves away from zero
func Round(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}

// ComputeSummary derives the headline metrics and the chart series of a simulation
func ComputeSummary(r *Result) (runs.Summary, runs.Chart) {
	summary := runs.Summary{
		PFail:   Round(r.PFail(), 4),
		NFailed: r.NFailed(),
		NSims:   r.NSims,
	}

	var failMonths []float64
	for _, month := range r.TimeToFail {
		if month > 0 {
			failMonths = append(failMonths, float64(month))
		}
	}
	if len(failMonths) > 0 {
		summary.TimeToFail = runs.TimeToFailStats{
			P10:    Quantile(failMonths, 0.10),
			P50:    Quantile(failMonths, 0.50),
			P90:    Quantile(failMonths, 0.90),
			Median: Quantile(failMonths, 0.50),
		}
	}

	summary.MinCash = runs.QuantileStats{
		P10: Quantile(r.MinCash, 0.10),
		P50: Quantile(r.MinCash, 0.50),
		P90: Quantile(r.MinCash, 0.90),
	}

	var total float64
	var count int
	for _, payments := range r.DebtPayments {
		for _, p := range payments {
			if p > 0 {
				total += p
				count++
			}
		}
	}
	if count > 0 {
		summary.AvgDebtPayment = Round(total/float64(count), 2)
	}

	chart := runs.Chart{
		Months:  make([]int, r.HorizonMonths+1),
		CashP10: make([]float64, r.HorizonMonths+1),
		CashP50: make([]float64, r.HorizonMonths+1),
		CashP90: make([]float64, r.HorizonMonths+1),
	}
	monthCash := make([]float64, len(r.CashPaths))
	for month := 0; month <= r.HorizonMonths; month++ {
		for i, path := range r.CashPaths {
			monthCash[i] = path[month]
		}
		chart.Months[month] = month
		chart.CashP10[month] = Round(Quantile(monthCash, 0.10), 2)
		chart.CashP50[month] = Round(Quantile(monthCash, 0.50), 2)
		chart.CashP90[month] = Round(Quantile(monthCash, 0.90), 2)
	}

	return summary, chart
}
