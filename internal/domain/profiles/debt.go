package profiles

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsm34/FlowRisk/internal/pkg/validators"
)

// Debt entity, owned by a financial profile. APR is a fraction (0.0499 is 4.99%).
type Debt struct {
	ID         int64
	ProfileID  int64  `validate:"required"`
	Name       string `validate:"required,min=1,max=128"`
	Balance    decimal.Decimal
	APR        decimal.Decimal
	MinPayment decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate for validating Debt struct
func (d *Debt) Validate() error {
	validate, err := validators.New()
	if err != nil {
		return err
	}
	if err := validators.FormatErrors(validate.Struct(d)); err != nil {
		return err
	}

	return nonNegative(map[string]decimal.Decimal{
		"Balance":    d.Balance,
		"APR":        d.APR,
		"MinPayment": d.MinPayment,
	})
}

// DebtInput carries the fields of a new debt
type DebtInput struct {
	Name       string
	Balance    decimal.Decimal
	APR        decimal.Decimal
	MinPayment decimal.Decimal
}

func sortedKeys(values map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
