package domain

import (
	"context"
	"errors"
)

// ErrTaxTablesNotFound is returned by a TaxTableRepository that has nothing stored yet
var ErrTaxTablesNotFound = errors.New("tax tables not found")

// TaxTableRepository defines the interface for loading and storing the tax lookup tables
type TaxTableRepository interface {
	// Load reads the tables. Returns an error wrapping ErrTaxTablesNotFound if none are stored.
	Load(ctx context.Context) (*TaxTables, error)

	// Save stores the tables, replacing any previous version
	Save(ctx context.Context, tables *TaxTables) error
}
