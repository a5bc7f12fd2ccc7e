//go:build unit
// +build unit

package v1

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/vsm34/FlowRisk/internal/domain/profiles"
	"github.com/vsm34/FlowRisk/internal/domain/runs"
	"github.com/vsm34/FlowRisk/internal/domain/scenarios"
	"github.com/vsm34/FlowRisk/internal/domain/users"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(ctx context.Context, authorization string) (*users.User, error) {
	args := m.Called(ctx, authorization)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockAuthService) DevBypassActive() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockProfileService is a mock implementation of ProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Get(ctx context.Context, userID int64) (*profiles.FinancialProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profiles.FinancialProfile), args.Error(1)
}

func (m *MockProfileService) Upsert(ctx context.Context, userID int64, input *profiles.ProfileInput) (*profiles.FinancialProfile, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profiles.FinancialProfile), args.Error(1)
}

func (m *MockProfileService) AddDebt(ctx context.Context, userID int64, input *profiles.DebtInput) (*profiles.Debt, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profiles.Debt), args.Error(1)
}

func (m *MockProfileService) DeleteDebt(ctx context.Context, userID, debtID int64) error {
	args := m.Called(ctx, userID, debtID)
	return args.Error(0)
}

// MockScenarioService is a mock implementation of ScenarioService
type MockScenarioService struct {
	mock.Mock
}

func (m *MockScenarioService) List(ctx context.Context, userID int64) ([]*scenarios.Scenario, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*scenarios.Scenario), args.Error(1)
}

func (m *MockScenarioService) Create(ctx context.Context, userID int64, input *scenarios.ScenarioInput) (*scenarios.Scenario, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scenarios.Scenario), args.Error(1)
}

func (m *MockScenarioService) Get(ctx context.Context, userID, scenarioID int64) (*scenarios.Scenario, error) {
	args := m.Called(ctx, userID, scenarioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scenarios.Scenario), args.Error(1)
}

func (m *MockScenarioService) Update(ctx context.Context, userID, scenarioID int64, update *scenarios.ScenarioUpdate) (*scenarios.Scenario, error) {
	args := m.Called(ctx, userID, scenarioID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scenarios.Scenario), args.Error(1)
}

// MockRunService is a mock implementation of RunService
type MockRunService struct {
	mock.Mock
}

func (m *MockRunService) Create(ctx context.Context, userID int64, request *runs.RunRequest) (*runs.Run, error) {
	args := m.Called(ctx, userID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*runs.Run), args.Error(1)
}

func (m *MockRunService) List(ctx context.Context, userID int64) ([]*runs.Run, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*runs.Run), args.Error(1)
}

func (m *MockRunService) Get(ctx context.Context, userID, runID int64) (*runs.Run, *runs.Result, error) {
	args := m.Called(ctx, userID, runID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*runs.Run), args.Get(1).(*runs.Result), args.Error(2)
}

type httpObservation struct {
	Method string
	Route  string
	Status int
}

// MockHTTPRecorder keeps every recorded request
type MockHTTPRecorder struct {
	mu           sync.Mutex
	observations []httpObservation
}

func (m *MockHTTPRecorder) RecordHTTPRequest(_ context.Context, method, route string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observations = append(m.observations, httpObservation{Method: method, Route: route, Status: status})
}
