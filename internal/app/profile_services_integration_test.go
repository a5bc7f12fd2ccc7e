//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsm34/FlowRisk/internal/domain/errs"
	"github.com/vsm34/FlowRisk/internal/domain/profiles"
	"github.com/vsm34/FlowRisk/internal/domain/users"
)

func authenticate(t *testing.T, services *TestServices, uid string) *users.User {
	t.Helper()
	user, err := services.AuthService.Authenticate(context.Background(), "Bearer valid-"+uid)
	require.NoError(t, err)
	return user
}

func profileInput() *profiles.ProfileInput {
	return &profiles.ProfileInput{
		MonthlyIncome:    decimal.RequireFromString("5000"),
		FixedExpenses:    decimal.RequireFromString("2000"),
		VariableExpenses: decimal.RequireFromString("800"),
		LiquidSavings:    decimal.RequireFromString("10000"),
	}
}

func TestProfileService_Upsert(t *testing.T) {
	services := SetupTestServices(t, false)
	ctx := context.Background()
	user := authenticate(t, services, "alice")

	_, err := services.ProfileService.Get(ctx, user.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, MsgProfileNotFound, errs.PublicMessage(err, ""))

	created, err := services.ProfileService.Upsert(ctx, user.ID, profileInput())
	require.NoError(t, err)
	assert.True(t, created.SigmaIncome.Equal(profiles.DefaultSigmaIncome))
	assert.True(t, created.SigmaVariable.Equal(profiles.DefaultSigmaVariable))

	sigma := decimal.RequireFromString("0.2")
	input := profileInput()
	input.SigmaIncome = &sigma
	input.LiquidSavings = decimal.RequireFromString("-150")

	updated, err := services.ProfileService.Upsert(ctx, user.ID, input)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "one profile per user")
	assert.True(t, updated.SigmaIncome.Equal(sigma))

	fetched, err := services.ProfileService.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, fetched.LiquidSavings.Equal(decimal.RequireFromString("-150")))

	bad := profileInput()
	bad.MonthlyIncome = decimal.RequireFromString("-1")
	_, err = services.ProfileService.Upsert(ctx, user.ID, bad)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestProfileService_Debts(t *testing.T) {
	services := SetupTestServices(t, false)
	ctx := context.Background()
	alice := authenticate(t, services, "alice")
	bob := authenticate(t, services, "bob")

	debtInput := &profiles.DebtInput{
		Name:       "Car loan",
		Balance:    decimal.RequireFromString("8000"),
		APR:        decimal.RequireFromString("0.0699"),
		MinPayment: decimal.RequireFromString("250"),
	}

	_, err := services.ProfileService.AddDebt(ctx, alice.ID, debtInput)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, MsgProfileNotFoundCreateFirst, errs.PublicMessage(err, ""))

	_, err = services.ProfileService.Upsert(ctx, alice.ID, profileInput())
	require.NoError(t, err)
	_, err = services.ProfileService.Upsert(ctx, bob.ID, profileInput())
	require.NoError(t, err)

	debt, err := services.ProfileService.AddDebt(ctx, alice.ID, debtInput)
	require.NoError(t, err)
	assert.NotZero(t, debt.ID)

	profile, err := services.ProfileService.Get(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, profile.Debts, 1)

	err = services.ProfileService.DeleteDebt(ctx, bob.ID, debt.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, MsgForbidden, errs.PublicMessage(err, ""))

	require.NoError(t, services.ProfileService.DeleteDebt(ctx, alice.ID, debt.ID))

	err = services.ProfileService.DeleteDebt(ctx, alice.ID, debt.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, MsgDebtNotFound, errs.PublicMessage(err, ""))

	_, err = services.ProfileService.AddDebt(ctx, alice.ID, &profiles.DebtInput{Name: ""})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}
