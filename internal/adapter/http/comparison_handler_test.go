package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simaogato/yieldcompare-backend/internal/domain"
	"github.com/simaogato/yieldcompare-backend/internal/usecase/comparison"
)

type MockComparer struct {
	mock.Mock
}

func (m *MockComparer) Compare(ctx context.Context, input domain.CalculationInput) (*domain.Comparison, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comparison), args.Error(1)
}

func (m *MockComparer) Options() domain.FormOptions {
	args := m.Called()
	return args.Get(0).(domain.FormOptions)
}

func postCompare(t *testing.T, h *ComparisonHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/compare", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Compare(rec, req)
	return rec
}

func TestComparisonHandler_Compare(t *testing.T) {
	service := comparison.NewComparisonService(domain.DefaultTaxTables(), false)
	h := NewComparisonHandler(service, zap.NewNop())

	rec := postCompare(t, h, `{
		"treasury_yield_pct": 5.0,
		"cd_yield_pct": 5.0,
		"federal_bracket": "35%",
		"state": "New York",
		"income_bracket": "high_income"
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp compareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	_, err := uuid.Parse(resp.ID)
	assert.NoError(t, err)
	assert.InDelta(t, 3.25, resp.AfterTaxTreasuryPct, 1e-9)
	assert.InDelta(t, 2.96335, resp.AfterTaxCDPct, 1e-9)
	assert.InDelta(t, 0.28665, resp.CDPremiumPct, 1e-9)
	assert.Equal(t, "INVEST_IN_TREASURY", resp.Recommendation)
	assert.Equal(t, "Invest in Treasury", resp.RecommendationLabel)
	assert.Equal(t, map[string]string{
		"after_tax_treasury_pct": "3.25",
		"after_tax_cd_pct":       "2.96",
		"cd_premium_pct":         "0.29",
	}, resp.Display)
	assert.False(t, resp.ComputedAt.IsZero())
}

func TestComparisonHandler_Compare_Rejections(t *testing.T) {
	h := NewComparisonHandler(comparison.NewComparisonService(domain.DefaultTaxTables(), true), zap.NewNop())

	tests := []struct {
		name           string
		method         string
		contentType    string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Wrong method",
			method:         http.MethodGet,
			contentType:    "application/json",
			expectedStatus: http.StatusMethodNotAllowed,
			expectedBody:   "method not allowed",
		},
		{
			name:           "Wrong content type",
			method:         http.MethodPost,
			contentType:    "text/plain",
			body:           `{}`,
			expectedStatus: http.StatusUnsupportedMediaType,
			expectedBody:   "Content-Type must be application/json",
		},
		{
			name:           "Malformed JSON",
			method:         http.MethodPost,
			contentType:    "application/json",
			body:           `{"treasury_yield_pct":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "Unknown field",
			method:         http.MethodPost,
			contentType:    "application/json",
			body:           `{"treasury_yield_pct": 5, "cd_yield_pct": 6, "bonus": 1}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "Missing yields",
			method:         http.MethodPost,
			contentType:    "application/json",
			body:           `{"federal_bracket": "22%"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "treasury_yield_pct and cd_yield_pct are required",
		},
		{
			name:           "Yield out of range",
			method:         http.MethodPost,
			contentType:    "application/json",
			body:           `{"treasury_yield_pct": -1, "cd_yield_pct": 6, "federal_bracket": "22%", "state": "Texas", "income_bracket": "mid_income"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "yield out of range",
		},
		{
			name:           "Unknown category in strict mode",
			method:         http.MethodPost,
			contentType:    "application/json",
			body:           `{"treasury_yield_pct": 5, "cd_yield_pct": 6, "federal_bracket": "50%", "state": "Texas", "income_bracket": "mid_income"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "unknown category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/compare", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()

			h.Compare(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestComparisonHandler_Compare_ServiceErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "Domain error", err: fmt.Errorf("bad: %w", domain.ErrUnknownCategory), expectedStatus: http.StatusBadRequest},
		{name: "Unexpected error", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockComparer)
			mockService.On("Compare", mock.Anything, mock.AnythingOfType("domain.CalculationInput")).Return(nil, tt.err)
			h := NewComparisonHandler(mockService, zap.NewNop())

			rec := postCompare(t, h, `{"treasury_yield_pct": 5, "cd_yield_pct": 6}`)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestComparisonHandler_Compare_PassesInputThrough(t *testing.T) {
	mockService := new(MockComparer)
	expectedInput := domain.CalculationInput{
		TreasuryYieldPct: 4.2,
		CDYieldPct:       4.8,
		FederalBracket:   "12%",
		State:            "Florida",
		IncomeBracket:    domain.IncomeBracketLow,
	}
	mockService.On("Compare", mock.Anything, expectedInput).Return(&domain.Comparison{
		ID:         uuid.New(),
		Input:      expectedInput,
		Result:     domain.CalculationResult{Recommendation: domain.RecommendationInvestInCD},
		ComputedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil)
	h := NewComparisonHandler(mockService, zap.NewNop())

	rec := postCompare(t, h, `{"treasury_yield_pct": 4.2, "cd_yield_pct": 4.8, "federal_bracket": "12%", "state": "Florida", "income_bracket": "low_income"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"computed_at":"2024-01-02T03:04:05Z"`)
	mockService.AssertExpectations(t)
}

func TestComparisonHandler_Options(t *testing.T) {
	h := NewComparisonHandler(comparison.NewComparisonService(domain.DefaultTaxTables(), false), zap.NewNop())

	rec := httptest.NewRecorder()
	h.Options(rec, httptest.NewRequest(http.MethodGet, "/options", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp optionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"10%", "12%", "22%", "24%", "32%", "35%", "37%"}, resp.FederalBrackets)
	assert.Equal(t, []string{"California", "Texas", "New York", "Florida", "Illinois"}, resp.States)
	assert.Equal(t, []string{"low_income", "mid_income", "high_income"}, resp.IncomeBrackets)
	assert.Equal(t, 0.0, resp.YieldMinPct)
	assert.Equal(t, 20.0, resp.YieldMaxPct)
	assert.Equal(t, 0.1, resp.YieldStepPct)

	rec = httptest.NewRecorder()
	h.Options(rec, httptest.NewRequest(http.MethodPost, "/options", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNewRouter(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	h := NewComparisonHandler(comparison.NewComparisonService(domain.DefaultTaxTables(), false), zap.NewNop())
	server := httptest.NewServer(NewRouter(h, limiter))
	defer server.Close()

	resp, err := http.Get(server.URL + "/options")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(server.URL+"/compare", "application/json", strings.NewReader(`{"treasury_yield_pct": 5, "cd_yield_pct": 6}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
