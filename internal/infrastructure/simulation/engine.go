package simulation

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/vsm34/FlowRisk/internal/domain/runs"
)

const cancelCheckInterval = 256

// Inputs are the monthly base values of a simulation
type Inputs struct {
	MonthlyIncome    float64
	FixedExpenses    float64
	VariableExpenses float64
	LiquidSavings    float64
	// DebtMinPayment is the sum of the minimum payments of all debts
	DebtMinPayment float64
	Assumptions    runs.Assumptions
	// Shock is nil for a baseline run
	Shock *Shock
}

// Result holds every simulated path. Paths that fail stop early and are padded with zeros.
type Result struct {
	// CashPaths has NSims rows of HorizonMonths+1 balances, index 0 being the starting cash
	CashPaths [][]float64
	Failed    []bool
	// TimeToFail is the failing month (1..HorizonMonths) per path, 0 when the path survived
	TimeToFail []int
	// MinCash is the lowest balance reached per path, the failing month excluded
	MinCash []float64
	// DebtPayments has NSims rows of HorizonMonths minimum payments
	DebtPayments  [][]float64
	HorizonMonths int
	NSims         int
	Seed          int64
	Assumptions   runs.Assumptions
}

// NFailed counts failed paths
func (r *Result) NFailed() int {
	n := 0
	for _, failed := range r.Failed {
		if failed {
			n++
		}
	}
	return n
}

// PFail is the share of failed paths, 0 for an empty result
func (r *Result) PFail() float64 {
	if r.NSims == 0 {
		return 0
	}
	return float64(r.NFailed()) / float64(r.NSims)
}

// newRand returns the generator of a run. All paths of a run share it in order.
func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Simulate runs nSims monthly cash-flow paths over horizonMonths.
//
// Each month starts from the base values, applies a job loss, draws income and variable
// expense noise, applies the remaining shock effects and settles cash. A path fails in the
// first month its cash would drop below zero.
func Simulate(ctx context.Context, in Inputs, horizonMonths, nSims int, seed int64) (*Result, error) {
	if horizonMonths < 1 {
		return nil, fmt.Errorf("horizon must be at least one month, got %d", horizonMonths)
	}
	if nSims < 1 {
		return nil, fmt.Errorf("at least one simulation path is required, got %d", nSims)
	}
	for name, v := range map[string]float64{
		"monthly income":    in.MonthlyIncome,
		"fixed expenses":    in.FixedExpenses,
		"variable expenses": in.VariableExpenses,
		"liquid savings":    in.LiquidSavings,
		"debt payments":     in.DebtMinPayment,
		"sigma income":      in.Assumptions.SigmaIncome,
		"sigma variable":    in.Assumptions.SigmaVariable,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s is not a finite number", name)
		}
	}

	rng := newRand(seed)
	sigmaIncome := in.Assumptions.SigmaIncome
	sigmaVariable := in.Assumptions.SigmaVariable

	res := &Result{
		CashPaths:     make([][]float64, nSims),
		Failed:        make([]bool, nSims),
		TimeToFail:    make([]int, nSims),
		MinCash:       make([]float64, nSims),
		DebtPayments:  make([][]float64, nSims),
		HorizonMonths: horizonMonths,
		NSims:         nSims,
		Seed:          seed,
		Assumptions:   in.Assumptions,
	}

	for sim := 0; sim < nSims; sim++ {
		if sim%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		cash := in.LiquidSavings
		path := make([]float64, horizonMonths+1)
		payments := make([]float64, horizonMonths)
		path[0] = cash
		pathMin := cash

		for month := 1; month <= horizonMonths; month++ {
			income := in.Shock.income(month, in.MonthlyIncome)
			variable := in.VariableExpenses

			if income > 0 && sigmaIncome > 0 {
				income = math.Max(0, income*(1+rng.NormFloat64()*sigmaIncome))
			}
			if sigmaVariable > 0 {
				variable = math.Max(0, variable*(1+rng.NormFloat64()*sigmaVariable))
			}

			fixed, debtMin := in.Shock.outflows(month, in.FixedExpenses, in.DebtMinPayment)

			beforeDebt := cash + income - fixed - variable
			next := beforeDebt - debtMin
			if next < 0 || (cash < debtMin && beforeDebt < debtMin) {
				res.Failed[sim] = true
				res.TimeToFail[sim] = month
				break
			}

			cash = next
			path[month] = cash
			payments[month-1] = debtMin
			pathMin = math.Min(pathMin, cash)
		}

		res.CashPaths[sim] = path
		res.DebtPayments[sim] = payments
		res.MinCash[sim] = pathMin
	}

	return res, nil
}
