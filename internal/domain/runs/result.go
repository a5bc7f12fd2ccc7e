package runs

import (
	"time"
)

// QuantileStats holds the 10th, 50th and 90th percentile of a sample
type QuantileStats struct {
	P10 float64 `json:"p10"`
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
}

// TimeToFailStats describes failure months of failed paths. It marshals to {} when no path failed,
// failure months being at least 1.
type TimeToFailStats struct {
	P10    float64 `json:"p10,omitempty"`
	P50    float64 `json:"p50,omitempty"`
	P90    float64 `json:"p90,omitempty"`
	Median float64 `json:"median,omitempty"`
}

// Summary holds the headline risk metrics of a run
type Summary struct {
	PFail          float64         `json:"p_fail"`
	NFailed        int             `json:"n_failed"`
	NSims          int             `json:"n_sims"`
	TimeToFail     TimeToFailStats `json:"time_to_fail"`
	MinCash        QuantileStats   `json:"min_cash"`
	AvgDebtPayment float64         `json:"avg_debt_payment"`
}

// Chart holds per-month cash percentiles, month 0 being the starting balance
type Chart struct {
	Months  []int     `json:"months"`
	CashP10 []float64 `json:"cash_p10"`
	CashP50 []float64 `json:"cash_p50"`
	CashP90 []float64 `json:"cash_p90"`
}

// Driver is the change in failure probability caused by one input perturbation.
// A positive delta means the perturbation reduces risk.
type Driver struct {
	Name       string  `json:"driver"`
	DeltaPFail float64 `json:"delta_p_fail"`
}

// Result entity, the computed outcome of a run
type Result struct {
	ID        int64
	RunID     int64
	Summary   Summary
	Drivers   []Driver
	Chart     Chart
	CreatedAt time.Time
}
