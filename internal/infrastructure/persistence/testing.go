//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vsm34/FlowRisk/internal/domain/profiles"
	"github.com/vsm34/FlowRisk/internal/domain/runs"
	"github.com/vsm34/FlowRisk/internal/domain/scenarios"
	"github.com/vsm34/FlowRisk/internal/domain/users"
	"github.com/vsm34/FlowRisk/internal/pkg/config"
	"github.com/vsm34/FlowRisk/internal/pkg/testutil"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB           *gorm.DB
	UserRepo     users.UserRepository
	ProfileRepo  profiles.ProfileRepository
	ScenarioRepo scenarios.ScenarioRepository
	RunRepo      runs.RunRepository
}

// SetupTestDB opens a migrated in-memory SQLite database with automatic cleanup
func SetupTestDB(t *testing.T) *TestContext {
	t.Helper()

	log := testutil.SetupTestLogger(t)

	settings := config.DatabaseSettings{
		Type:           config.SqliteDbType,
		DSN:            config.SqliteMemoryDSN,
		ConnectRetries: 1,
	}

	db, err := NewDBConnection(context.Background(), settings, log)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	userRepo, err := NewGormUserRepository(db, log)
	require.NoError(t, err)
	profileRepo, err := NewGormProfileRepository(db, log)
	require.NoError(t, err)
	scenarioRepo, err := NewGormScenarioRepository(db, log)
	require.NoError(t, err)
	runRepo, err := NewGormRunRepository(db, log)
	require.NoError(t, err)

	return &TestContext{
		DB:           db,
		UserRepo:     userRepo,
		ProfileRepo:  profileRepo,
		ScenarioRepo: scenarioRepo,
		RunRepo:      runRepo,
	}
}

// CreateTestUser stores a user with the given Firebase uid
func CreateTestUser(t *testing.T, tc *TestContext, firebaseUID string) *users.User {
	t.Helper()

	user := &users.User{FirebaseUID: firebaseUID}
	require.NoError(t, tc.UserRepo.Create(context.Background(), user))
	return user
}

// CreateTestProfile stores a profile with typical values for userID
func CreateTestProfile(t *testing.T, tc *TestContext, userID int64) *profiles.FinancialProfile {
	t.Helper()

	profile := &profiles.FinancialProfile{
		UserID:           userID,
		MonthlyIncome:    decimal.RequireFromString("5000.00"),
		SigmaIncome:      profiles.DefaultSigmaIncome,
		FixedExpenses:    decimal.RequireFromString("2000.00"),
		VariableExpenses: decimal.RequireFromString("800.00"),
		SigmaVariable:    profiles.DefaultSigmaVariable,
		LiquidSavings:    decimal.RequireFromString("12000.00"),
	}
	require.NoError(t, tc.ProfileRepo.Save(context.Background(), profile))
	return profile
}

// CreateTestScenario stores a scenario of scenarioType for userID
func CreateTestScenario(t *testing.T, tc *TestContext, userID int64, name, scenarioType string) *scenarios.Scenario {
	t.Helper()

	scenario := &scenarios.Scenario{
		UserID:     userID,
		Name:       name,
		Type:       scenarioType,
		Parameters: scenarios.Parameters{"start_month": 2.0},
	}
	require.NoError(t, tc.ScenarioRepo.Create(context.Background(), scenario))
	return scenario
}
