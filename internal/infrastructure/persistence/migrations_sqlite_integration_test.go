//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsm34/FlowRisk/internal/domain/profiles"
	"github.com/vsm34/FlowRisk/internal/domain/runs"
	"github.com/vsm34/FlowRisk/internal/pkg/config"
	"github.com/vsm34/FlowRisk/internal/pkg/testutil"
)

func TestMigrations_UpDownCurrent(t *testing.T) {
	log := testutil.SetupTestLogger(t)
	db, err := NewDBConnection(context.Background(), config.DatabaseSettings{
		Type:           config.SqliteDbType,
		DSN:            config.SqliteMemoryDSN,
		ConnectRetries: 1,
	}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB(db) })

	version, err := CurrentVersion(db)
	require.NoError(t, err)
	assert.Empty(t, version)

	require.NoError(t, MigrateTo(db, MigrationInitialSchema))
	version, err = CurrentVersion(db)
	require.NoError(t, err)
	assert.Equal(t, MigrationInitialSchema, version)
	assert.True(t, db.Migrator().HasTable("users"))
	assert.False(t, db.Migrator().HasTable("stress_test_runs"))

	require.NoError(t, Migrate(db))
	version, err = CurrentVersion(db)
	require.NoError(t, err)
	assert.Equal(t, MigrationDropIxUsersID, version)
	assert.True(t, db.Migrator().HasTable("stress_test_results"))

	require.NoError(t, Migrate(db), "migrating twice is a no-op")

	require.NoError(t, RollbackLast(db))
	version, err = CurrentVersion(db)
	require.NoError(t, err)
	assert.Equal(t, MigrationStressTests, version)
	assert.True(t, db.Migrator().HasIndex("users", "ix_users_id"))

	require.NoError(t, Migrate(db))
	assert.False(t, db.Migrator().HasIndex("users", "ix_users_id"))

	require.NoError(t, RollbackLast(db))
	require.NoError(t, RollbackLast(db))
	require.NoError(t, RollbackLast(db))
	assert.False(t, db.Migrator().HasTable("users"))

	assert.Error(t, RollbackLast(db))
}

func TestMigrations_ForeignKeys(t *testing.T) {
	tc := SetupTestDB(t)
	ctx := context.Background()

	countRows := func(table, where string, args ...interface{}) int64 {
		var n int64
		require.NoError(t, tc.DB.Table(table).Where(where, args...).Count(&n).Error)
		return n
	}

	t.Run("debts are deleted with their profile", func(t *testing.T) {
		user := CreateTestUser(t, tc, "fk-profile-owner")
		profile := CreateTestProfile(t, tc, user.ID)
		require.NoError(t, tc.ProfileRepo.CreateDebt(ctx, &profiles.Debt{
			ProfileID:  profile.ID,
			Name:       "Card",
			Balance:    decimal.RequireFromString("1500.00"),
			APR:        decimal.RequireFromString("0.1999"),
			MinPayment: decimal.RequireFromString("45.00"),
		}))
		require.Equal(t, int64(1), countRows("debts", "profile_id = ?", profile.ID))

		require.NoError(t, tc.DB.Exec("DELETE FROM financial_profiles WHERE id = ?", profile.ID).Error)
		assert.Zero(t, countRows("debts", "profile_id = ?", profile.ID))
	})

	t.Run("orphan debt is rejected", func(t *testing.T) {
		err := tc.ProfileRepo.CreateDebt(ctx, &profiles.Debt{
			ProfileID:  9999,
			Name:       "Orphan",
			Balance:    decimal.RequireFromString("10.00"),
			APR:        decimal.Zero,
			MinPayment: decimal.RequireFromString("1.00"),
		})
		assert.Error(t, err)
		assert.Zero(t, countRows("debts", "profile_id = ?", 9999))
	})

	t.Run("deleting a scenario detaches its runs", func(t *testing.T) {
		user := CreateTestUser(t, tc, "fk-scenario-owner")
		scenario := CreateTestScenario(t, tc, user.ID, "Layoff", "job_loss")
		run := &runs.Run{UserID: user.ID, ScenarioID: &scenario.ID, HorizonMonths: 12, NSims: 1000, Seed: 1}
		require.NoError(t, tc.RunRepo.CreateWithResult(ctx, run, &runs.Result{}))

		require.NoError(t, tc.DB.Exec("DELETE FROM scenarios WHERE id = ?", scenario.ID).Error)

		fetched, err := tc.RunRepo.GetByIDForUser(ctx, user.ID, run.ID)
		require.NoError(t, err)
		assert.Nil(t, fetched.ScenarioID)
	})

	t.Run("deleting a user removes owned rows", func(t *testing.T) {
		user := CreateTestUser(t, tc, "fk-leaving-user")
		CreateTestProfile(t, tc, user.ID)
		CreateTestScenario(t, tc, user.ID, "Rent hike", "rent_increase")
		run := &runs.Run{UserID: user.ID, HorizonMonths: 12, NSims: 1000, Seed: 1}
		require.NoError(t, tc.RunRepo.CreateWithResult(ctx, run, &runs.Result{}))

		require.NoError(t, tc.DB.Exec("DELETE FROM users WHERE id = ?", user.ID).Error)

		assert.Zero(t, countRows("financial_profiles", "user_id = ?", user.ID))
		assert.Zero(t, countRows("scenarios", "user_id = ?", user.ID))
		assert.Zero(t, countRows("stress_test_runs", "user_id = ?", user.ID))
		assert.Zero(t, countRows("stress_test_results", "run_id = ?", run.ID))
	})
}
