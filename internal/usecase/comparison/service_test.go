package comparison

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/yieldcompare-backend/internal/domain"
)

func validInput() domain.CalculationInput {
	return domain.CalculationInput{
		TreasuryYieldPct: 5.0,
		CDYieldPct:       6.0,
		FederalBracket:   "22%",
		State:            "Texas",
		IncomeBracket:    domain.IncomeBracketMid,
	}
}

func TestCompare_Success(t *testing.T) {
	ctx := context.Background()
	service := NewComparisonService(domain.DefaultTaxTables(), false)
	fixed := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	comparison, err := service.Compare(ctx, validInput())

	require.NoError(t, err)
	require.NotNil(t, comparison)
	assert.NotEqual(t, uuid.Nil, comparison.ID)
	assert.Equal(t, fixed, comparison.ComputedAt)
	assert.Equal(t, validInput(), comparison.Input)
	assert.InDelta(t, 3.90, comparison.Result.AfterTaxTreasuryPct, 1e-9)
	assert.InDelta(t, 4.68, comparison.Result.AfterTaxCDPct, 1e-9)
	assert.Equal(t, domain.RecommendationInvestInCD, comparison.Result.Recommendation)
}

func TestCompare_EachCallGetsNewID(t *testing.T) {
	ctx := context.Background()
	service := NewComparisonService(domain.DefaultTaxTables(), false)

	first, err := service.Compare(ctx, validInput())
	require.NoError(t, err)
	second, err := service.Compare(ctx, validInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Result, second.Result)
}

func TestCompare_YieldOutOfRange(t *testing.T) {
	ctx := context.Background()
	service := NewComparisonService(domain.DefaultTaxTables(), false)

	input := validInput()
	input.CDYieldPct = 25

	comparison, err := service.Compare(ctx, input)

	assert.Nil(t, comparison)
	assert.ErrorIs(t, err, domain.ErrYieldOutOfRange)
}

func TestCompare_LenientUnknownCategories(t *testing.T) {
	ctx := context.Background()
	service := NewComparisonService(domain.DefaultTaxTables(), false)

	input := validInput()
	input.FederalBracket = "99%"
	input.State = "Nevada"

	comparison, err := service.Compare(ctx, input)

	require.NoError(t, err)
	assert.InDelta(t, 5.0, comparison.Result.AfterTaxTreasuryPct, 1e-9)
	assert.InDelta(t, 6.0, comparison.Result.AfterTaxCDPct, 1e-9)
}

func TestCompare_StrictUnknownCategories(t *testing.T) {
	ctx := context.Background()
	service := NewComparisonService(domain.DefaultTaxTables(), true)

	tests := []struct {
		name   string
		mutate func(in *domain.CalculationInput)
		errMsg string
	}{
		{name: "Unknown federal bracket", mutate: func(in *domain.CalculationInput) { in.FederalBracket = "99%" }, errMsg: "federal bracket"},
		{name: "Unknown state", mutate: func(in *domain.CalculationInput) { in.State = "Nevada" }, errMsg: "state"},
		{name: "Unknown income bracket", mutate: func(in *domain.CalculationInput) { in.IncomeBracket = "rich" }, errMsg: "income bracket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			comparison, err := service.Compare(ctx, input)

			assert.Nil(t, comparison)
			assert.ErrorIs(t, err, domain.ErrUnknownCategory)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCompare_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	service := NewComparisonService(domain.DefaultTaxTables(), false)

	comparison, err := service.Compare(ctx, validInput())

	assert.Nil(t, comparison)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptions(t *testing.T) {
	service := NewComparisonService(domain.DefaultTaxTables(), false)

	options := service.Options()

	assert.Equal(t, []string{"10%", "12%", "22%", "24%", "32%", "35%", "37%"}, options.FederalBrackets)
	assert.Equal(t, []string{"California", "Texas", "New York", "Florida", "Illinois"}, options.States)
	assert.Len(t, options.IncomeBrackets, 3)
}
