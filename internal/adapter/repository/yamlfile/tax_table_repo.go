package yamlfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/simaogato/yieldcompare-backend/internal/domain"
)

// taxTableFile is the on-disk layout. Row order is display order.
//
//	federal_brackets:
//	  - label: "22%"
//	    rate: 22
//	states:
//	  - name: California
//	    rates: {low_income: 1, mid_income: 6, high_income: 9.3}
type taxTableFile struct {
	FederalBrackets []federalRow `yaml:"federal_brackets"`
	States          []stateRow   `yaml:"states"`
}

type federalRow struct {
	Label string  `yaml:"label"`
	Rate  float64 `yaml:"rate"`
}

type stateRow struct {
	Name  string             `yaml:"name"`
	Rates map[string]float64 `yaml:"rates"`
}

// taxTableRepository implements domain.TaxTableRepository on a YAML file
type taxTableRepository struct {
	path string
}

// NewTaxTableRepository creates a repository backed by the YAML file at path
func NewTaxTableRepository(path string) domain.TaxTableRepository {
	return &taxTableRepository{path: path}
}

// Load reads and validates the tables from the file
func (r *taxTableRepository) Load(ctx context.Context) (*domain.TaxTables, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no tax table file at %s: %w", r.path, domain.ErrTaxTablesNotFound)
		}
		return nil, fmt.Errorf("failed to read tax table file: %w", err)
	}

	return Decode(data)
}

// Save writes the tables to the file, creating parent directories as needed
func (r *taxTableRepository) Save(ctx context.Context, tables *domain.TaxTables) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(tables)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create tax table directory: %w", err)
		}
	}

	// Sibling temp file, then an atomic rename
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write tax table file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace tax table file: %w", err)
	}

	return nil
}

// Decode parses YAML tax tables and validates them
func Decode(data []byte) (*domain.TaxTables, error) {
	var file taxTableFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse tax table file: %w", err)
	}

	federal := make([]domain.FederalBracket, 0, len(file.FederalBrackets))
	for _, row := range file.FederalBrackets {
		federal = append(federal, domain.FederalBracket{Label: row.Label, Rate: row.Rate})
	}

	states := make([]domain.StateTax, 0, len(file.States))
	for _, row := range file.States {
		rates := make(map[domain.IncomeBracket]float64, len(row.Rates))
		for bracket, rate := range row.Rates {
			rates[domain.IncomeBracket(bracket)] = rate
		}
		states = append(states, domain.StateTax{Name: row.Name, Rates: rates})
	}

	tables, err := domain.NewTaxTables(federal, states)
	if err != nil {
		return nil, fmt.Errorf("invalid tax tables: %w", err)
	}
	return tables, nil
}

// Encode renders tables as YAML in the file layout
func Encode(tables *domain.TaxTables) ([]byte, error) {
	var file taxTableFile
	for _, fb := range tables.FederalBrackets() {
		file.FederalBrackets = append(file.FederalBrackets, federalRow{Label: fb.Label, Rate: fb.Rate})
	}
	for _, st := range tables.States() {
		rates := make(map[string]float64, len(st.Rates))
		for bracket, rate := range st.Rates {
			rates[string(bracket)] = rate
		}
		file.States = append(file.States, stateRow{Name: st.Name, Rates: rates})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&file); err != nil {
		return nil, fmt.Errorf("failed to encode tax tables: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode tax tables: %w", err)
	}
	return buf.Bytes(), nil
}
