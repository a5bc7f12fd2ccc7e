package persistence

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vsm34/FlowRisk/internal/infrastructure/persistence/models"
)

// Migration IDs, applied in this order
const (
	MigrationInitialSchema   = "202501010001_initial_schema"
	MigrationStressTests     = "202501150001_stress_tests"
	MigrationDropIxUsersID   = "202502010001_drop_ix_users_id"
	migrationsTableName      = "schema_migrations"
	migrationsIDColumnName   = "id"
	migrationsIDColumnLength = 255
)

// Table snapshots as they were when each migration was written. Later model changes
// must not alter what an old migration creates. The relation fields only declare
// foreign keys; CreateTable emits them inside CREATE TABLE.
type (
	userV1 struct {
		ID          int64     `gorm:"primaryKey;autoIncrement"`
		FirebaseUID string    `gorm:"type:varchar(128);not null;uniqueIndex:ix_users_firebase_uid"`
		CreatedAt   time.Time `gorm:"not null"`
	}
	financialProfileV1 struct {
		ID               int64           `gorm:"primaryKey;autoIncrement"`
		UserID           int64           `gorm:"not null;uniqueIndex"`
		MonthlyIncome    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
		SigmaIncome      decimal.Decimal `gorm:"type:numeric(5,4);not null;default:0.05"`
		FixedExpenses    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
		VariableExpenses decimal.Decimal `gorm:"type:numeric(10,2);not null"`
		SigmaVariable    decimal.Decimal `gorm:"type:numeric(5,4);not null;default:0.10"`
		LiquidSavings    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
		AssumptionsJSON  models.JSONMap  `gorm:"column:assumptions_json"`
		CreatedAt        time.Time       `gorm:"not null"`
		UpdatedAt        time.Time       `gorm:"not null"`
		User             userV1          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	}
	debtV1 struct {
		ID         int64              `gorm:"primaryKey;autoIncrement"`
		ProfileID  int64              `gorm:"not null;index"`
		Name       string             `gorm:"type:varchar(128);not null"`
		Balance    decimal.Decimal    `gorm:"type:numeric(10,2);not null"`
		APR        decimal.Decimal    `gorm:"column:apr;type:numeric(6,5);not null"`
		MinPayment decimal.Decimal    `gorm:"type:numeric(10,2);not null"`
		CreatedAt  time.Time          `gorm:"not null"`
		UpdatedAt  time.Time          `gorm:"not null"`
		Profile    financialProfileV1 `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	}
	scenarioV1 struct {
		ID             int64          `gorm:"primaryKey;autoIncrement"`
		UserID         int64          `gorm:"not null;index"`
		Name           string         `gorm:"type:varchar(128);not null"`
		Type           string         `gorm:"type:varchar(50);not null"`
		ParametersJSON models.JSONMap `gorm:"column:parameters_json;not null"`
		CreatedAt      time.Time      `gorm:"not null"`
		UpdatedAt      time.Time      `gorm:"not null"`
		User           userV1         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	}
	stressTestRunV1 struct {
		ID              int64       `gorm:"primaryKey;autoIncrement"`
		UserID          int64       `gorm:"not null;index"`
		ScenarioID      *int64      `gorm:"index"`
		HorizonMonths   int         `gorm:"not null"`
		NSims           int         `gorm:"column:n_sims;not null"`
		Seed            int64       `gorm:"not null"`
		AssumptionsJSON string      `gorm:"column:assumptions_json;type:text;not null"`
		CreatedAt       time.Time   `gorm:"not null"`
		UpdatedAt       time.Time   `gorm:"not null"`
		User            userV1      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
		Scenario        *scenarioV1 `gorm:"foreignKey:ScenarioID;constraint:OnDelete:SET NULL"`
	}
	stressTestResultV1 struct {
		ID                 int64           `gorm:"primaryKey;autoIncrement"`
		RunID              int64           `gorm:"not null;uniqueIndex"`
		SummaryMetricsJSON string          `gorm:"column:summary_metrics_json;type:text;not null"`
		DriversJSON        string          `gorm:"column:drivers_json;type:text;not null"`
		ChartDataJSON      string          `gorm:"column:chart_data_json;type:text;not null"`
		CreatedAt          time.Time       `gorm:"not null"`
		Run                stressTestRunV1 `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
	}
)

func (userV1) TableName() string             { return "users" }
func (financialProfileV1) TableName() string { return "financial_profiles" }
func (debtV1) TableName() string             { return "debts" }
func (scenarioV1) TableName() string         { return "scenarios" }
func (stressTestRunV1) TableName() string    { return "stress_test_runs" }
func (stressTestResultV1) TableName() string { return "stress_test_results" }

// Migrations returns every schema migration in order
func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: MigrationInitialSchema,
			Migrate: func(tx *gorm.DB) error {
				return tx.Migrator().CreateTable(&userV1{}, &financialProfileV1{}, &debtV1{}, &scenarioV1{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&scenarioV1{}, &debtV1{}, &financialProfileV1{}, &userV1{})
			},
		},
		{
			ID: MigrationStressTests,
			Migrate: func(tx *gorm.DB) error {
				return tx.Migrator().CreateTable(&stressTestRunV1{}, &stressTestResultV1{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&stressTestResultV1{}, &stressTestRunV1{})
			},
		},
		{
			// The primary key already indexes users.id; older schemas carried a second index.
			ID: MigrationDropIxUsersID,
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS ix_users_id").Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("CREATE INDEX IF NOT EXISTS ix_users_id ON users (id)").Error
			},
		},
	}
}

func newMigrator(db *gorm.DB) *gormigrate.Gormigrate {
	options := &gormigrate.Options{
		TableName:                 migrationsTableName,
		IDColumnName:              migrationsIDColumnName,
		IDColumnSize:              migrationsIDColumnLength,
		UseTransaction:            true,
		ValidateUnknownMigrations: true,
	}
	return gormigrate.New(db, options, Migrations())
}

// Migrate applies all pending migrations
func Migrate(db *gorm.DB) error {
	if err := newMigrator(db).Migrate(); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// MigrateTo applies pending migrations up to and including migrationID
func MigrateTo(db *gorm.DB, migrationID string) error {
	if err := newMigrator(db).MigrateTo(migrationID); err != nil {
		return fmt.Errorf("failed to migrate schema to %s: %w", migrationID, err)
	}
	return nil
}

// RollbackLast reverts the most recently applied migration
func RollbackLast(db *gorm.DB) error {
	if err := newMigrator(db).RollbackLast(); err != nil {
		if errors.Is(err, gormigrate.ErrNoRunMigration) {
			return fmt.Errorf("no migration has been applied")
		}
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// CurrentVersion returns the ID of the latest applied migration, or "" for an empty database
func CurrentVersion(db *gorm.DB) (string, error) {
	if !db.Migrator().HasTable(migrationsTableName) {
		return "", nil
	}

	applied := make(map[string]bool)
	var ids []string
	if err := db.Table(migrationsTableName).Pluck(migrationsIDColumnName, &ids).Error; err != nil {
		return "", fmt.Errorf("failed to read applied migrations: %w", err)
	}
	for _, id := range ids {
		applied[id] = true
	}

	current := ""
	for _, m := range Migrations() {
		if applied[m.ID] {
			current = m.ID
		}
	}
	return current, nil
}
