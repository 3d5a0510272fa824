package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/simaogato/yieldcompare-backend/internal/domain"
)

// TaxTableSeeder makes sure a tax table source exists before the service starts
type TaxTableSeeder struct {
	repo     domain.TaxTableRepository
	defaults *domain.TaxTables
}

// NewTaxTableSeeder creates a new TaxTableSeeder that writes defaults when nothing is stored
func NewTaxTableSeeder(repo domain.TaxTableRepository, defaults *domain.TaxTables) *TaxTableSeeder {
	return &TaxTableSeeder{
		repo:     repo,
		defaults: defaults,
	}
}

// Seed returns the stored tables, writing the defaults first if none exist.
// Operators extend the seeded file to add states or brackets.
func (s *TaxTableSeeder) Seed(ctx context.Context) (*domain.TaxTables, error) {
	tables, err := s.repo.Load(ctx)
	if err == nil {
		return tables, nil
	}
	if !errors.Is(err, domain.ErrTaxTablesNotFound) {
		return nil, fmt.Errorf("failed to load tax tables: %w", err)
	}

	// Nothing stored yet, write the defaults
	if err := s.repo.Save(ctx, s.defaults); err != nil {
		return nil, fmt.Errorf("failed to seed tax tables: %w", err)
	}

	return s.defaults, nil
}
