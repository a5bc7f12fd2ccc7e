package validators

import (
	"github.com/go-playground/validator/v10"
)

// Scenario types understood by the simulation engine
const (
	ScenarioTypeBaseline     = "baseline"
	ScenarioTypeDecision     = "decision"
	ScenarioTypeJobLoss      = "job_loss"
	ScenarioTypeExpenseShock = "expense_shock"
	ScenarioTypeRateShock    = "rate_shock"
	ScenarioTypeRentIncrease = "rent_increase"
)

// ScenarioTypes lists every supported scenario type
var ScenarioTypes = []string{
	ScenarioTypeBaseline,
	ScenarioTypeDecision,
	ScenarioTypeJobLoss,
	ScenarioTypeExpenseShock,
	ScenarioTypeRateShock,
	ScenarioTypeRentIncrease,
}

// ScenarioTypeTag is the struct tag name ScenarioTypeValidation is registered under
const ScenarioTypeTag = "scenarioType"

// IsScenarioType reports whether t is a supported scenario type
func IsScenarioType(t string) bool {
	for _, known := range ScenarioTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ScenarioTypeValidation validates that a string field holds a supported scenario type.
func ScenarioTypeValidation(fl validator.FieldLevel) bool {
	return IsScenarioType(fl.Field().String())
}

// New returns a validator with the FlowRisk custom validations registered.
func New() (*validator.Validate, error) {
	validate := validator.New()
	if err := validate.RegisterValidation(ScenarioTypeTag, ScenarioTypeValidation); err != nil {
		return nil, err
	}
	return validate, nil
}
