package scenarios

import (
	"time"

	"github.com/vsm34/FlowRisk/internal/pkg/validators"
)

// Scenario entity describing a shock applied during a stress test
type Scenario struct {
	ID         int64
	UserID     int64      `validate:"required"`
	Name       string     `validate:"required,min=1,max=128"`
	Type       string     `validate:"required,scenarioType"`
	Parameters Parameters `validate:"-"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate for validating Scenario struct
func (s *Scenario) Validate() error {
	validate, err := validators.New()
	if err != nil {
		return err
	}
	return validators.FormatErrors(validate.Struct(s))
}

// ScenarioInput carries the fields of a new scenario
type ScenarioInput struct {
	Name       string
	Type       string
	Parameters Parameters
}

// ScenarioUpdate carries a partial update; nil fields are left unchanged
type ScenarioUpdate struct {
	Name       *string
	Type       *string
	Parameters Parameters
}

// ApplyTo copies the provided fields onto s
func (u *ScenarioUpdate) ApplyTo(s *Scenario) {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Type != nil {
		s.Type = *u.Type
	}
	if u.Parameters != nil {
		s.Parameters = u.Parameters
	}
}
