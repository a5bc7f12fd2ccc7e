package models

import (
	"time"

	"github.com/vsm34/FlowRisk/internal/domain/scenarios"
)

// ScenarioModel is the GORM database model for scenarios
type ScenarioModel struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	UserID         int64     `gorm:"not null;index"`
	Name           string    `gorm:"type:varchar(128);not null"`
	Type           string    `gorm:"type:varchar(50);not null"`
	ParametersJSON JSONMap   `gorm:"column:parameters_json;not null"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ScenarioModel) TableName() string {
	return "scenarios"
}

// ToDomain converts GORM model to domain entity
func (m *ScenarioModel) ToDomain() *scenarios.Scenario {
	params := scenarios.Parameters(m.ParametersJSON)
	if params == nil {
		params = scenarios.Parameters{}
	}
	return &scenarios.Scenario{
		ID:         m.ID,
		UserID:     m.UserID,
		Name:       m.Name,
		Type:       m.Type,
		Parameters: params,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model. Missing parameters are stored as {}.
func (m *ScenarioModel) FromDomain(s *scenarios.Scenario) {
	m.ID = s.ID
	m.UserID = s.UserID
	m.Name = s.Name
	m.Type = s.Type
	m.ParametersJSON = JSONMap(s.Parameters)
	if m.ParametersJSON == nil {
		m.ParametersJSON = JSONMap{}
	}
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt
}
