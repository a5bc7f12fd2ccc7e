package runs

import (
	"fmt"
	"time"

	"github.com/vsm34/FlowRisk/internal/domain/scenarios"
	"github.com/vsm34/FlowRisk/internal/pkg/validators"
)

// Run request defaults and bounds
const (
	DefaultHorizonMonths = 12
	DefaultNSims         = 1000
	MinSeed              = -1 << 31
	MaxSeed              = 1<<31 - 1
)

// Assumptions are the volatilities a run actually used
type Assumptions struct {
	SigmaIncome   float64 `json:"sigma_income"`
	SigmaVariable float64 `json:"sigma_variable"`
}

// Run entity, the parameters of one stress test
type Run struct {
	ID            int64
	UserID        int64 `validate:"required"`
	ScenarioID    *int64
	HorizonMonths int   `validate:"gte=1,lte=24"`
	NSims         int   `validate:"gte=100,lte=5000"`
	Seed          int64 `validate:"gte=-2147483648,lte=2147483647"`
	Assumptions   Assumptions
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate for validating Run struct
func (r *Run) Validate() error {
	validate, err := validators.New()
	if err != nil {
		return err
	}
	return validators.FormatErrors(validate.Struct(r))
}

// RunRequest carries the caller's parameters for a new run. A nil ScenarioID is a baseline run.
type RunRequest struct {
	ScenarioID    *int64
	HorizonMonths int    `validate:"gte=1,lte=24"`
	NSims         int    `validate:"gte=100,lte=5000"`
	Seed          *int64 `validate:"omitempty,gte=-2147483648,lte=2147483647"`
	Assumptions   map[string]any
}

// NewRunRequest returns a request holding the default horizon and path count
func NewRunRequest() *RunRequest {
	return &RunRequest{
		HorizonMonths: DefaultHorizonMonths,
		NSims:         DefaultNSims,
	}
}

// Validate for validating RunRequest struct
func (r *RunRequest) Validate() error {
	validate, err := validators.New()
	if err != nil {
		return err
	}
	return validators.FormatErrors(validate.Struct(r))
}

// ResolveAssumptions merges request overrides with the profile volatilities.
// sigma_variable wins over its alias sigma_var; an explicit zero is honoured.
func ResolveAssumptions(overrides map[string]any, profileSigmaIncome, profileSigmaVariable float64) (Assumptions, error) {
	params := scenarios.Parameters(overrides)

	sigmaIncome, err := params.Float("sigma_income", profileSigmaIncome)
	if err != nil {
		return Assumptions{}, fmt.Errorf("invalid assumptions: %w", err)
	}

	key := "sigma_variable"
	if v, ok := params[key]; !ok || v == nil {
		key = "sigma_var"
	}
	sigmaVariable, err := params.Float(key, profileSigmaVariable)
	if err != nil {
		return Assumptions{}, fmt.Errorf("invalid assumptions: %w", err)
	}

	return Assumptions{SigmaIncome: sigmaIncome, SigmaVariable: sigmaVariable}, nil
}
