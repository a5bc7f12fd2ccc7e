package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsm34/FlowRisk/internal/domain/profiles"
)

// FinancialProfileModel is the GORM database model for financial profiles
type FinancialProfileModel struct {
	ID               int64           `gorm:"primaryKey;autoIncrement"`
	UserID           int64           `gorm:"not null;uniqueIndex"`
	MonthlyIncome    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	SigmaIncome      decimal.Decimal `gorm:"type:numeric(5,4);not null"`
	FixedExpenses    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	VariableExpenses decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	SigmaVariable    decimal.Decimal `gorm:"type:numeric(5,4);not null"`
	LiquidSavings    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	AssumptionsJSON  JSONMap         `gorm:"column:assumptions_json"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
	Debts            []DebtModel     `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (FinancialProfileModel) TableName() string {
	return "financial_profiles"
}

// ToDomain converts GORM model to domain entity
func (m *FinancialProfileModel) ToDomain() *profiles.FinancialProfile {
	p := &profiles.FinancialProfile{
		ID:               m.ID,
		UserID:           m.UserID,
		MonthlyIncome:    m.MonthlyIncome,
		SigmaIncome:      m.SigmaIncome,
		FixedExpenses:    m.FixedExpenses,
		VariableExpenses: m.VariableExpenses,
		SigmaVariable:    m.SigmaVariable,
		LiquidSavings:    m.LiquidSavings,
		Assumptions:      m.AssumptionsJSON,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		Debts:            make([]*profiles.Debt, 0, len(m.Debts)),
	}
	for i := range m.Debts {
		p.Debts = append(p.Debts, m.Debts[i].ToDomain())
	}
	return p
}

// FromDomain converts domain entity to GORM model. Debts are persisted separately.
func (m *FinancialProfileModel) FromDomain(p *profiles.FinancialProfile) {
	m.ID = p.ID
	m.UserID = p.UserID
	m.MonthlyIncome = p.MonthlyIncome
	m.SigmaIncome = p.SigmaIncome
	m.FixedExpenses = p.FixedExpenses
	m.VariableExpenses = p.VariableExpenses
	m.SigmaVariable = p.SigmaVariable
	m.LiquidSavings = p.LiquidSavings
	m.AssumptionsJSON = p.Assumptions
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}

// DebtModel is the GORM database model for debts
type DebtModel struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	ProfileID  int64           `gorm:"not null;index"`
	Name       string          `gorm:"type:varchar(128);not null"`
	Balance    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	APR        decimal.Decimal `gorm:"column:apr;type:numeric(6,5);not null"`
	MinPayment decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (DebtModel) TableName() string {
	return "debts"
}

// ToDomain converts GORM model to domain entity
func (m *DebtModel) ToDomain() *profiles.Debt {
	return &profiles.Debt{
		ID:         m.ID,
		ProfileID:  m.ProfileID,
		Name:       m.Name,
		Balance:    m.Balance,
		APR:        m.APR,
		MinPayment: m.MinPayment,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *DebtModel) FromDomain(d *profiles.Debt) {
	m.ID = d.ID
	m.ProfileID = d.ProfileID
	m.Name = d.Name
	m.Balance = d.Balance
	m.APR = d.APR
	m.MinPayment = d.MinPayment
	m.CreatedAt = d.CreatedAt
	m.UpdatedAt = d.UpdatedAt
}
