package profiles

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsm34/FlowRisk/internal/pkg/validators"
)

// Default volatilities applied when a profile upsert omits them
var (
	DefaultSigmaIncome   = decimal.RequireFromString("0.05")
	DefaultSigmaVariable = decimal.RequireFromString("0.10")
)

// FinancialProfile entity, one per user
type FinancialProfile struct {
	ID               int64
	UserID           int64 `validate:"required"`
	MonthlyIncome    decimal.Decimal
	SigmaIncome      decimal.Decimal
	FixedExpenses    decimal.Decimal
	VariableExpenses decimal.Decimal
	SigmaVariable    decimal.Decimal
	LiquidSavings    decimal.Decimal
	Assumptions      map[string]any
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Debts            []*Debt
}

// Validate for validating FinancialProfile struct
func (p *FinancialProfile) Validate() error {
	validate, err := validators.New()
	if err != nil {
		return err
	}
	if err := validators.FormatErrors(validate.Struct(p)); err != nil {
		return err
	}

	return nonNegative(map[string]decimal.Decimal{
		"MonthlyIncome":    p.MonthlyIncome,
		"SigmaIncome":      p.SigmaIncome,
		"FixedExpenses":    p.FixedExpenses,
		"VariableExpenses": p.VariableExpenses,
		"SigmaVariable":    p.SigmaVariable,
	})
}

// TotalMinPayment sums the minimum payment of every debt
func (p *FinancialProfile) TotalMinPayment() decimal.Decimal {
	total := decimal.Zero
	for _, d := range p.Debts {
		total = total.Add(d.MinPayment)
	}
	return total
}

// ProfileInput carries the fields of a profile upsert. Nil sigmas take the defaults.
type ProfileInput struct {
	MonthlyIncome    decimal.Decimal
	SigmaIncome      *decimal.Decimal
	FixedExpenses    decimal.Decimal
	VariableExpenses decimal.Decimal
	SigmaVariable    *decimal.Decimal
	LiquidSavings    decimal.Decimal
	Assumptions      map[string]any
}

// ApplyTo overwrites every user-editable field of p with the input values
func (in *ProfileInput) ApplyTo(p *FinancialProfile) {
	p.MonthlyIncome = in.MonthlyIncome
	p.SigmaIncome = DefaultSigmaIncome
	if in.SigmaIncome != nil {
		p.SigmaIncome = *in.SigmaIncome
	}
	p.FixedExpenses = in.FixedExpenses
	p.VariableExpenses = in.VariableExpenses
	p.SigmaVariable = DefaultSigmaVariable
	if in.SigmaVariable != nil {
		p.SigmaVariable = *in.SigmaVariable
	}
	p.LiquidSavings = in.LiquidSavings
	p.Assumptions = in.Assumptions
}

func nonNegative(values map[string]decimal.Decimal) error {
	var messages []string
	for _, field := range sortedKeys(values) {
		if values[field].IsNegative() {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: gte", field))
		}
	}
	if len(messages) > 0 {
		return fmt.Errorf("validation failed: %v", messages)
	}
	return nil
}
