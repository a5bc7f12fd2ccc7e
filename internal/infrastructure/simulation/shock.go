package simulation

import (
	"fmt"

	"github.com/vsm34/FlowRisk/internal/domain/scenarios"
	"github.com/vsm34/FlowRisk/internal/pkg/validators"
)

// Shock is a scenario with its parameters resolved to numbers
type Shock struct {
	Type string

	// job_loss
	StartMonth                 int
	DurationMonths             int
	UnemploymentReplacementPct float64

	// rent_increase, reuses StartMonth
	RentDelta float64

	// rate_shock
	MinPaymentIncrease float64

	// decision
	OneTimeCost         float64
	ExtraMonthlyPayment float64

	// expense_shock
	ShockMonth    int
	ShockAmount   float64
	ShockDuration int
}

// NewShock resolves the parameters a scenario type reads, applying their defaults.
// A nil scenario yields a nil shock, the baseline.
func NewShock(s *scenarios.Scenario) (*Shock, error) {
	if s == nil {
		return nil, nil
	}

	p := s.Parameters
	shock := &Shock{Type: s.Type}
	var err error

	switch s.Type {
	case validators.ScenarioTypeJobLoss:
		if shock.StartMonth, err = p.Int("start_month", 1); err != nil {
			return nil, err
		}
		if shock.DurationMonths, err = p.Int("duration_months", 3); err != nil {
			return nil, err
		}
		if shock.UnemploymentReplacementPct, err = p.Float("unemployment_replacement_pct", 0); err != nil {
			return nil, err
		}
	case validators.ScenarioTypeRentIncrease:
		if shock.StartMonth, err = p.Int("start_month", 1); err != nil {
			return nil, err
		}
		if shock.RentDelta, err = p.Float("rent_delta", 0); err != nil {
			return nil, err
		}
	case validators.ScenarioTypeRateShock:
		if shock.MinPaymentIncrease, err = p.Float("min_payment_increase", 0); err != nil {
			return nil, err
		}
	case validators.ScenarioTypeDecision:
		if shock.OneTimeCost, err = p.Float("one_time_cost", 0); err != nil {
			return nil, err
		}
		if shock.ExtraMonthlyPayment, err = p.Float("extra_monthly_payment", 0); err != nil {
			return nil, err
		}
	case validators.ScenarioTypeExpenseShock:
		if shock.ShockMonth, err = p.Int("shock_month", 1); err != nil {
			return nil, err
		}
		if shock.ShockAmount, err = p.Float("shock_amount", 0); err != nil {
			return nil, err
		}
		if shock.ShockDuration, err = p.Int("shock_duration", 1); err != nil {
			return nil, err
		}
	case validators.ScenarioTypeBaseline:
	default:
		return nil, fmt.Errorf("unsupported scenario type: %s", s.Type)
	}

	return shock, nil
}

// income applies a job loss to the base income of month. It runs before income noise is drawn;
// outflows runs after.
func (s *Shock) income(month int, base float64) float64 {
	if s == nil || s.Type != validators.ScenarioTypeJobLoss {
		return base
	}
	if month >= s.StartMonth && month < s.StartMonth+s.DurationMonths {
		return base * s.UnemploymentReplacementPct
	}
	return base
}

func (s *Shock) outflows(month int, fixed, debtMin float64) (float64, float64) {
	if s == nil {
		return fixed, debtMin
	}

	switch s.Type {
	case validators.ScenarioTypeRentIncrease:
		if month >= s.StartMonth {
			fixed += s.RentDelta
		}
	case validators.ScenarioTypeRateShock:
		debtMin += s.MinPaymentIncrease
	case validators.ScenarioTypeDecision:
		if month == 1 && s.OneTimeCost > 0 {
			fixed += s.OneTimeCost
		}
		if s.ExtraMonthlyPayment > 0 {
			debtMin += s.ExtraMonthlyPayment
		}
	case validators.ScenarioTypeExpenseShock:
		if month >= s.ShockMonth && month < s.ShockMonth+s.ShockDuration {
			if s.ShockDuration > 1 {
				fixed += s.ShockAmount / float64(s.ShockDuration)
			} else {
				fixed += s.ShockAmount
			}
		}
	}

	return fixed, debtMin
}
