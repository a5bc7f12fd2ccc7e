package v1

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsm34/FlowRisk/internal/domain/profiles"
	"github.com/vsm34/FlowRisk/internal/domain/runs"
	"github.com/vsm34/FlowRisk/internal/domain/scenarios"
	"github.com/vsm34/FlowRisk/internal/domain/users"
)

// Decimal places of the stored numeric columns
const (
	moneyPlaces = 2
	sigmaPlaces = 4
	aprPlaces   = 5
)

func fixed(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}

// MeResponse identifies the authenticated caller
type MeResponse struct {
	ID          int64  `json:"id"`
	FirebaseUID string `json:"firebase_uid"`
}

// WhoAmIResponse is returned by the development identity endpoint
type WhoAmIResponse struct {
	Message     string `json:"message"`
	UserID      int64  `json:"user_id"`
	FirebaseUID string `json:"firebase_uid"`
	Environment string `json:"environment"`
}

// ProfileUpsertRequest creates or replaces the caller's profile. Amounts accept JSON numbers or strings.
type ProfileUpsertRequest struct {
	MonthlyIncome    *decimal.Decimal `json:"monthly_income" binding:"required"`
	SigmaIncome      *decimal.Decimal `json:"sigma_income"`
	FixedExpenses    *decimal.Decimal `json:"fixed_expenses" binding:"required"`
	VariableExpenses *decimal.Decimal `json:"variable_expenses" binding:"required"`
	SigmaVariable    *decimal.Decimal `json:"sigma_variable"`
	LiquidSavings    *decimal.Decimal `json:"liquid_savings" binding:"required"`
	AssumptionsJSON  map[string]any   `json:"assumptions_json"`
}

// ToInput converts the request to a profile upsert
func (r *ProfileUpsertRequest) ToInput() *profiles.ProfileInput {
	return &profiles.ProfileInput{
		MonthlyIncome:    *r.MonthlyIncome,
		SigmaIncome:      r.SigmaIncome,
		FixedExpenses:    *r.FixedExpenses,
		VariableExpenses: *r.VariableExpenses,
		SigmaVariable:    r.SigmaVariable,
		LiquidSavings:    *r.LiquidSavings,
		Assumptions:      r.AssumptionsJSON,
	}
}

// DebtCreateRequest adds a debt to the caller's profile
type DebtCreateRequest struct {
	Name       string           `json:"name" binding:"required"`
	Balance    *decimal.Decimal `json:"balance" binding:"required"`
	APR        *decimal.Decimal `json:"apr" binding:"required"`
	MinPayment *decimal.Decimal `json:"min_payment" binding:"required"`
}

// ToInput converts the request to a debt input
func (r *DebtCreateRequest) ToInput() *profiles.DebtInput {
	return &profiles.DebtInput{
		Name:       r.Name,
		Balance:    *r.Balance,
		APR:        *r.APR,
		MinPayment: *r.MinPayment,
	}
}

// DebtInProfileResponse is a debt listed inside a profile
type DebtInProfileResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Balance    string `json:"balance"`
	APR        string `json:"apr"`
	MinPayment string `json:"min_payment"`
}

// ProfileResponse represents a financial profile with its debts
type ProfileResponse struct {
	ID               int64                   `json:"id"`
	UserID           int64                   `json:"user_id"`
	MonthlyIncome    string                  `json:"monthly_income"`
	SigmaIncome      string                  `json:"sigma_income"`
	FixedExpenses    string                  `json:"fixed_expenses"`
	VariableExpenses string                  `json:"variable_expenses"`
	SigmaVariable    string                  `json:"sigma_variable"`
	LiquidSavings    string                  `json:"liquid_savings"`
	AssumptionsJSON  map[string]any          `json:"assumptions_json"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
	Debts            []DebtInProfileResponse `json:"debts"`
}

// NewProfileResponse converts a profile entity
func NewProfileResponse(p *profiles.FinancialProfile) ProfileResponse {
	debts := make([]DebtInProfileResponse, 0, len(p.Debts))
	for _, d := range p.Debts {
		debts = append(debts, DebtInProfileResponse{
			ID:         d.ID,
			Name:       d.Name,
			Balance:    fixed(d.Balance, moneyPlaces),
			APR:        fixed(d.APR, aprPlaces),
			MinPayment: fixed(d.MinPayment, moneyPlaces),
		})
	}
	return ProfileResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		MonthlyIncome:    fixed(p.MonthlyIncome, moneyPlaces),
		SigmaIncome:      fixed(p.SigmaIncome, sigmaPlaces),
		FixedExpenses:    fixed(p.FixedExpenses, moneyPlaces),
		VariableExpenses: fixed(p.VariableExpenses, moneyPlaces),
		SigmaVariable:    fixed(p.SigmaVariable, sigmaPlaces),
		LiquidSavings:    fixed(p.LiquidSavings, moneyPlaces),
		AssumptionsJSON:  p.Assumptions,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		Debts:            debts,
	}
}

// DebtResponse represents a stored debt
type DebtResponse struct {
	ID         int64     `json:"id"`
	ProfileID  int64     `json:"profile_id"`
	Name       string    `json:"name"`
	Balance    string    `json:"balance"`
	APR        string    `json:"apr"`
	MinPayment string    `json:"min_payment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewDebtResponse converts a debt entity
func NewDebtResponse(d *profiles.Debt) DebtResponse {
	return DebtResponse{
		ID:         d.ID,
		ProfileID:  d.ProfileID,
		Name:       d.Name,
		Balance:    fixed(d.Balance, moneyPlaces),
		APR:        fixed(d.APR, aprPlaces),
		MinPayment: fixed(d.MinPayment, moneyPlaces),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// ScenarioCreateRequest creates a scenario
type ScenarioCreateRequest struct {
	Name           string         `json:"name" binding:"required"`
	Type           string         `json:"type" binding:"required"`
	ParametersJSON map[string]any `json:"parameters_json"`
}

// ToInput converts the request to a scenario input
func (r *ScenarioCreateRequest) ToInput() *scenarios.ScenarioInput {
	return &scenarios.ScenarioInput{
		Name:       r.Name,
		Type:       r.Type,
		Parameters: scenarios.Parameters(r.ParametersJSON),
	}
}

// ScenarioUpdateRequest updates the provided scenario fields
type ScenarioUpdateRequest struct {
	Name           *string        `json:"name"`
	Type           *string        `json:"type"`
	ParametersJSON map[string]any `json:"parameters_json"`
}

// ToUpdate converts the request to a partial scenario update
func (r *ScenarioUpdateRequest) ToUpdate() *scenarios.ScenarioUpdate {
	return &scenarios.ScenarioUpdate{
		Name:       r.Name,
		Type:       r.Type,
		Parameters: scenarios.Parameters(r.ParametersJSON),
	}
}

// ScenarioResponse represents a stored scenario
type ScenarioResponse struct {
	ID             int64          `json:"id"`
	UserID         int64          `json:"user_id"`
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	ParametersJSON map[string]any `json:"parameters_json"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewScenarioResponse converts a scenario entity
func NewScenarioResponse(s *scenarios.Scenario) ScenarioResponse {
	params := map[string]any(s.Parameters)
	if params == nil {
		params = map[string]any{}
	}
	return ScenarioResponse{
		ID:             s.ID,
		UserID:         s.UserID,
		Name:           s.Name,
		Type:           s.Type,
		ParametersJSON: params,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// RunCreateRequest launches a stress test. A null scenario_id runs the baseline.
type RunCreateRequest struct {
	ScenarioID    *int64         `json:"scenario_id"`
	HorizonMonths int            `json:"horizon_months" binding:"gte=1,lte=24"`
	NSims         int            `json:"n_sims" binding:"gte=100,lte=5000"`
	Seed          *int64         `json:"seed" binding:"omitempty,gte=-2147483648,lte=2147483647"`
	Assumptions   map[string]any `json:"assumptions"`
}

// NewRunCreateRequest returns a request holding the defaults of omitted fields
func NewRunCreateRequest() *RunCreateRequest {
	return &RunCreateRequest{
		HorizonMonths: runs.DefaultHorizonMonths,
		NSims:         runs.DefaultNSims,
	}
}

// ToRunRequest converts the request to a run request
func (r *RunCreateRequest) ToRunRequest() *runs.RunRequest {
	return &runs.RunRequest{
		ScenarioID:    r.ScenarioID,
		HorizonMonths: r.HorizonMonths,
		NSims:         r.NSims,
		Seed:          r.Seed,
		Assumptions:   r.Assumptions,
	}
}

// RunCreateResponse carries the id of a new run
type RunCreateResponse struct {
	RunID int64 `json:"run_id"`
}

// RunListItem summarises a run in listings
type RunListItem struct {
	ID            int64     `json:"id"`
	ScenarioID    *int64    `json:"scenario_id"`
	HorizonMonths int       `json:"horizon_months"`
	NSims         int       `json:"n_sims"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewRunListItem converts a run entity
func NewRunListItem(r *runs.Run) RunListItem {
	return RunListItem{
		ID:            r.ID,
		ScenarioID:    r.ScenarioID,
		HorizonMonths: r.HorizonMonths,
		NSims:         r.NSims,
		CreatedAt:     r.CreatedAt,
	}
}

// RunDetail is the run metadata inside a result response
type RunDetail struct {
	ID            int64            `json:"id"`
	ScenarioID    *int64           `json:"scenario_id"`
	HorizonMonths int              `json:"horizon_months"`
	NSims         int              `json:"n_sims"`
	Seed          int64            `json:"seed"`
	Assumptions   runs.Assumptions `json:"assumptions"`
	CreatedAt     string           `json:"created_at"`
}

// RunResultResponse carries a run with its computed result
type RunResultResponse struct {
	Run     RunDetail     `json:"run"`
	Summary runs.Summary  `json:"summary"`
	Drivers []runs.Driver `json:"drivers"`
	Chart   runs.Chart    `json:"chart"`
}

// NewRunResultResponse combines a run and its result
func NewRunResultResponse(run *runs.Run, result *runs.Result) RunResultResponse {
	drivers := result.Drivers
	if drivers == nil {
		drivers = []runs.Driver{}
	}
	return RunResultResponse{
		Run: RunDetail{
			ID:            run.ID,
			ScenarioID:    run.ScenarioID,
			HorizonMonths: run.HorizonMonths,
			NSims:         run.NSims,
			Seed:          run.Seed,
			Assumptions:   run.Assumptions,
			CreatedAt:     run.CreatedAt.Format(time.RFC3339Nano),
		},
		Summary: result.Summary,
		Drivers: drivers,
		Chart:   result.Chart,
	}
}

func newMeResponse(u *users.User) MeResponse {
	return MeResponse{ID: u.ID, FirebaseUID: u.FirebaseUID}
}
