package profiles

import (
	"context"
)

// ProfileService manages the financial profile of the calling user and its debts.
type ProfileService interface {
	// Get returns the caller's profile with debts.
	Get(ctx context.Context, userID int64) (*FinancialProfile, error)

	// Upsert creates the caller's profile or replaces all of its fields.
	Upsert(ctx context.Context, userID int64, input *ProfileInput) (*FinancialProfile, error)

	// AddDebt attaches a new debt to the caller's profile.
	AddDebt(ctx context.Context, userID int64, input *DebtInput) (*Debt, error)

	// DeleteDebt removes a debt; it fails with errs.ErrForbidden when the debt belongs to another user.
	DeleteDebt(ctx context.Context, userID, debtID int64) error
}

// ProfileRepository defines the interface for FinancialProfile and Debt persistence
type ProfileRepository interface {
	// GetByUserID retrieves a profile with its debts; errs.ErrNotFound when absent
	GetByUserID(ctx context.Context, userID int64) (*FinancialProfile, error)
	// GetByID retrieves a profile without debts; errs.ErrNotFound when absent
	GetByID(ctx context.Context, profileID int64) (*FinancialProfile, error)
	// Save inserts a new profile or updates an existing one
	Save(ctx context.Context, profile *FinancialProfile) error
	// GetDebtByID retrieves a Debt; errs.ErrNotFound when absent
	GetDebtByID(ctx context.Context, debtID int64) (*Debt, error)
	// CreateDebt adds a new Debt to the database
	CreateDebt(ctx context.Context, debt *Debt) error
	// DeleteDebtByID deletes a Debt by ID
	DeleteDebtByID(ctx context.Context, debtID int64) error
}
