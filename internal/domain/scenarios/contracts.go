package scenarios

import (
	"context"
)

// ScenarioService manages the scenarios of the calling user.
type ScenarioService interface {
	// List returns the caller's scenarios, newest first.
	List(ctx context.Context, userID int64) ([]*Scenario, error)

	// Create stores a new scenario for the caller.
	Create(ctx context.Context, userID int64, input *ScenarioInput) (*Scenario, error)

	// Get returns a scenario; errs.ErrNotFound when missing, errs.ErrForbidden when owned by someone else.
	Get(ctx context.Context, userID, scenarioID int64) (*Scenario, error)

	// Update applies a partial update with the same errors as Get.
	Update(ctx context.Context, userID, scenarioID int64, update *ScenarioUpdate) (*Scenario, error)
}

// ScenarioRepository defines the interface for Scenario-related operations
type ScenarioRepository interface {
	// ListByUserID lists the Scenarios of a user ordered by creation time, newest first
	ListByUserID(ctx context.Context, userID int64) ([]*Scenario, error)
	// GetByID retrieves a Scenario by ID; errs.ErrNotFound when absent
	GetByID(ctx context.Context, scenarioID int64) (*Scenario, error)
	// Create adds a new Scenario to the database
	Create(ctx context.Context, scenario *Scenario) error
	// Update persists all fields of an existing Scenario
	Update(ctx context.Context, scenario *Scenario) error
}
