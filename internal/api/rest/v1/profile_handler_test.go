//go:build unit
// +build unit

package v1

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vsm34/FlowRisk/internal/domain/errs"
	"github.com/vsm34/FlowRisk/internal/domain/profiles"
)

func testProfile() *profiles.FinancialProfile {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return &profiles.FinancialProfile{
		ID:               3,
		UserID:           testUser.ID,
		MonthlyIncome:    decimal.RequireFromString("5000"),
		SigmaIncome:      decimal.RequireFromString("0.05"),
		FixedExpenses:    decimal.RequireFromString("2000.5"),
		VariableExpenses: decimal.RequireFromString("800"),
		SigmaVariable:    decimal.RequireFromString("0.1"),
		LiquidSavings:    decimal.RequireFromString("-20"),
		CreatedAt:        created,
		UpdatedAt:        created,
		Debts: []*profiles.Debt{{
			ID:         9,
			ProfileID:  3,
			Name:       "Card",
			Balance:    decimal.RequireFromString("1200"),
			APR:        decimal.RequireFromString("0.1999"),
			MinPayment: decimal.RequireFromString("35"),
		}},
	}
}

func TestProfileHandler_Get(t *testing.T) {
	tr := newTestRouter(t, false, RouteSettings{})
	tr.profiles.On("Get", mock.Anything, testUser.ID).Return(testProfile(), nil).Once()

	w := tr.do(http.MethodGet, "/v1/profile", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "5000.00", body["monthly_income"])
	assert.Equal(t, "0.0500", body["sigma_income"])
	assert.Equal(t, "2000.50", body["fixed_expenses"])
	assert.Equal(t, "-20.00", body["liquid_savings"])
	assert.Nil(t, body["assumptions_json"])
	assert.Equal(t, "2025-01-02T03:04:05Z", body["created_at"])

	debts := body["debts"].([]any)
	assert.Len(t, debts, 1)
	assert.Equal(t, map[string]any{
		"id":          float64(9),
		"name":        "Card",
		"balance":     "1200.00",
		"apr":         "0.19990",
		"min_payment": "35.00",
	}, debts[0])
	tr.profiles.AssertExpectations(t)
}

func TestProfileHandler_Get_NotFound(t *testing.T) {
	tr := newTestRouter(t, false, RouteSettings{})
	tr.profiles.On("Get", mock.Anything, testUser.ID).Return(nil, errs.NotFound("Profile not found"))

	w := tr.do(http.MethodGet, "/v1/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Profile not found"}`, w.Body.String())
}

func TestProfileHandler_Upsert(t *testing.T) {
	tr := newTestRouter(t, false, RouteSettings{})
	tr.profiles.On("Upsert", mock.Anything, testUser.ID, mock.MatchedBy(func(in *profiles.ProfileInput) bool {
		return in.MonthlyIncome.Equal(decimal.RequireFromString("5000")) &&
			in.SigmaIncome == nil &&
			in.SigmaVariable != nil && in.SigmaVariable.Equal(decimal.RequireFromString("0.2")) &&
			in.Assumptions["note"] == "x"
	})).Return(testProfile(), nil).Once()
	tr.profiles.On("Get", mock.Anything, testUser.ID).Return(testProfile(), nil).Once()

	w := tr.do(http.MethodPost, "/v1/profile", `{
		"monthly_income": 5000,
		"fixed_expenses": "2000.50",
		"variable_expenses": 800,
		"sigma_variable": 0.2,
		"liquid_savings": -20,
		"assumptions_json": {"note": "x"}
	}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["debts"], 1)
	tr.profiles.AssertExpectations(t)
}

func TestProfileHandler_Upsert_MissingField(t *testing.T) {
	tr := newTestRouter(t, false, RouteSettings{})

	w := tr.do(http.MethodPost, "/v1/profile", `{"monthly_income": 5000}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	tr.profiles.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileHandler_Upsert_ValidationError(t *testing.T) {
	tr := newTestRouter(t, false, RouteSettings{})
	tr.profiles.On("Upsert", mock.Anything, testUser.ID, mock.Anything).
		Return(nil, errs.InvalidInput("validation failed: [Field: MonthlyIncome, Tag: gte]", nil))

	w := tr.do(http.MethodPost, "/v1/profile", `{"monthly_income": -1, "fixed_expenses": 0, "variable_expenses": 0, "liquid_savings": 0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w)["detail"], "MonthlyIncome")
}

func TestProfileHandler_CreateDebt(t *testing.T) {
	tr := newTestRouter(t, false, RouteSettings{})
	debt := testProfile().Debts[0]
	tr.profiles.On("AddDebt", mock.Anything, testUser.ID, mock.MatchedBy(func(in *profiles.DebtInput) bool {
		return in.Name == "Card" && in.APR.Equal(decimal.RequireFromString("0.1999"))
	})).Return(debt, nil)

	w := tr.do(http.MethodPost, "/v1/profile/debts", `{"name":"Card","balance":1200,"apr":0.1999,"min_payment":35}`)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(9), body["id"])
	assert.Equal(t, float64(3), body["profile_id"])
	assert.Equal(t, "0.19990", body["apr"])
	assert.Contains(t, body, "created_at")
	assert.Contains(t, body, "updated_at")
}

func TestProfileHandler_DeleteDebt(t *testing.T) {
	tr := newTestRouter(t, false, RouteSettings{})
	tr.profiles.On("DeleteDebt", mock.Anything, testUser.ID, int64(9)).Return(nil)
	tr.profiles.On("DeleteDebt", mock.Anything, testUser.ID, int64(10)).Return(errs.Forbidden("Forbidden"))
	tr.profiles.On("DeleteDebt", mock.Anything, testUser.ID, int64(11)).Return(errs.NotFound("Debt not found"))
	tr.profiles.On("DeleteDebt", mock.Anything, testUser.ID, int64(12)).Return(errors.New("database is locked"))

	tests := []struct {
		url    string
		status int
		detail string
	}{
		{"/v1/profile/debts/9", http.StatusNoContent, ""},
		{"/v1/profile/debts/10", http.StatusForbidden, "Forbidden"},
		{"/v1/profile/debts/11", http.StatusNotFound, "Debt not found"},
		{"/v1/profile/debts/12", http.StatusInternalServerError, MsgInternalError},
		{"/v1/profile/debts/abc", http.StatusUnprocessableEntity, ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			w := tr.do(http.MethodDelete, tt.url, nil)
			assert.Equal(t, tt.status, w.Code)
			if tt.detail != "" {
				assert.Equal(t, tt.detail, decode(t, w)["detail"])
			}
			if tt.status == http.StatusNoContent {
				assert.Empty(t, w.Body.String())
			}
		})
	}
}
