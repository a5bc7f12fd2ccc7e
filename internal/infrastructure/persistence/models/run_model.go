package models

import (
	"time"

	"github.com/vsm34/FlowRisk/internal/domain/runs"
)

// StressTestRunModel is the GORM database model for stress-test runs
type StressTestRunModel struct {
	ID              int64            `gorm:"primaryKey;autoIncrement"`
	UserID          int64            `gorm:"not null;index"`
	ScenarioID      *int64           `gorm:"index"`
	HorizonMonths   int              `gorm:"not null"`
	NSims           int              `gorm:"column:n_sims;not null"`
	Seed            int64            `gorm:"not null"`
	AssumptionsJSON runs.Assumptions `gorm:"column:assumptions_json;serializer:json;type:text;not null"`
	CreatedAt       time.Time        `gorm:"not null"`
	UpdatedAt       time.Time        `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (StressTestRunModel) TableName() string {
	return "stress_test_runs"
}

// ToDomain converts GORM model to domain entity
func (m *StressTestRunModel) ToDomain() *runs.Run {
	return &runs.Run{
		ID:            m.ID,
		UserID:        m.UserID,
		ScenarioID:    m.ScenarioID,
		HorizonMonths: m.HorizonMonths,
		NSims:         m.NSims,
		Seed:          m.Seed,
		Assumptions:   m.AssumptionsJSON,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *StressTestRunModel) FromDomain(r *runs.Run) {
	m.ID = r.ID
	m.UserID = r.UserID
	m.ScenarioID = r.ScenarioID
	m.HorizonMonths = r.HorizonMonths
	m.NSims = r.NSims
	m.Seed = r.Seed
	m.AssumptionsJSON = r.Assumptions
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
}

// StressTestResultModel is the GORM database model for stress-test results
type StressTestResultModel struct {
	ID                 int64         `gorm:"primaryKey;autoIncrement"`
	RunID              int64         `gorm:"not null;uniqueIndex"`
	SummaryMetricsJSON runs.Summary  `gorm:"column:summary_metrics_json;serializer:json;type:text;not null"`
	DriversJSON        []runs.Driver `gorm:"column:drivers_json;serializer:json;type:text;not null"`
	ChartDataJSON      runs.Chart    `gorm:"column:chart_data_json;serializer:json;type:text;not null"`
	CreatedAt          time.Time     `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (StressTestResultModel) TableName() string {
	return "stress_test_results"
}

// ToDomain converts GORM model to domain entity
func (m *StressTestResultModel) ToDomain() *runs.Result {
	drivers := m.DriversJSON
	if drivers == nil {
		drivers = []runs.Driver{}
	}
	return &runs.Result{
		ID:        m.ID,
		RunID:     m.RunID,
		Summary:   m.SummaryMetricsJSON,
		Drivers:   drivers,
		Chart:     m.ChartDataJSON,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *StressTestResultModel) FromDomain(r *runs.Result) {
	m.ID = r.ID
	m.RunID = r.RunID
	m.SummaryMetricsJSON = r.Summary
	m.DriversJSON = r.Drivers
	m.ChartDataJSON = r.Chart
	m.CreatedAt = r.CreatedAt
}
