package comparison

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/simaogato/yieldcompare-backend/internal/domain"
	"github.com/simaogato/yieldcompare-backend/internal/usecase/comparator"
)

// ComparisonService runs one CD vs Treasury comparison per user action
type ComparisonService struct {
	Tables *domain.TaxTables

	// Strict rejects unknown federal brackets, states and income brackets
	// instead of treating them as zero-rate jurisdictions
	Strict bool

	now func() time.Time
}

// NewComparisonService creates a new ComparisonService instance.
// tables is shared read-only across all calls.
func NewComparisonService(tables *domain.TaxTables, strict bool) *ComparisonService {
	return &ComparisonService{
		Tables: tables,
		Strict: strict,
		now:    time.Now,
	}
}

// Compare validates the input the way every front end must, then runs the comparator
// Logic:
//   - Yields must lie in [0, 20] percent
//   - In strict mode every category must be recognized (ErrUnknownCategory)
//   - Otherwise unknown categories silently read as zero tax
//
// Returns the result tagged with a fresh ID. Nothing is retained.
func (s *ComparisonService) Compare(ctx context.Context, input domain.CalculationInput) (*domain.Comparison, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := input.ValidateYields(); err != nil {
		return nil, err
	}

	if s.Strict {
		if err := s.Tables.ValidateCategories(input); err != nil {
			return nil, err
		}
	}

	return &domain.Comparison{
		ID:         uuid.New(),
		Input:      input,
		Result:     comparator.Compare(s.Tables, input),
		ComputedAt: s.now(),
	}, nil
}

// Options returns the choices a front end should offer
func (s *ComparisonService) Options() domain.FormOptions {
	return s.Tables.Options()
}
