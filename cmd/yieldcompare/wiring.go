package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/simaogato/yieldcompare-backend/internal/adapter/repository/yamlfile"
	"github.com/simaogato/yieldcompare-backend/internal/domain"
	"github.com/simaogato/yieldcompare-backend/internal/usecase/comparison"
	"github.com/simaogato/yieldcompare-backend/internal/usecase/seeder"
)

// loadTables returns the built-in tables, or the configured file after seeding it with them
func (a *app) loadTables(ctx context.Context) (*domain.TaxTables, error) {
	if a.cfg.TaxTableFile == "" {
		a.logger.Debug("using built-in tax tables")
		return domain.DefaultTaxTables(), nil
	}

	repo := yamlfile.NewTaxTableRepository(a.cfg.TaxTableFile)
	tables, err := seeder.NewTaxTableSeeder(repo, domain.DefaultTaxTables()).Seed(ctx)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("tax tables loaded",
		zap.String("file", a.cfg.TaxTableFile),
		zap.Int("federal_brackets", len(tables.FederalBrackets())),
		zap.Int("states", len(tables.States())))
	return tables, nil
}

func (a *app) comparisonService(ctx context.Context) (*comparison.ComparisonService, error) {
	tables, err := a.loadTables(ctx)
	if err != nil {
		return nil, err
	}
	return comparison.NewComparisonService(tables, a.cfg.StrictValidation), nil
}
