package domain

import (
	"errors"
	"fmt"
)

// FederalBracketTable maps a federal bracket label (e.g. "22%") to its rate in percent.
// The label is informative only; the stored rate is authoritative.
type FederalBracketTable map[string]float64

// Rate returns the rate for label, or 0 when the label is unknown
func (t FederalBracketTable) Rate(label string) float64 {
	return lookupOrZero(t, label)
}

// StateTaxTable maps a state to its rate in percent for each income bracket
type StateTaxTable map[string]map[IncomeBracket]float64

// Rate returns the rate for state and bracket, or 0 when either is unknown
func (t StateTaxTable) Rate(state string, bracket IncomeBracket) float64 {
	return lookupOrZero(t[state], bracket)
}

// lookupOrZero is a total lookup: missing keys (and nil maps) read as a zero rate
func lookupOrZero[K comparable](m map[K]float64, key K) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return 0
}

// FederalBracket is one row of the federal table
type FederalBracket struct {
	Label string
	Rate  float64
}

// StateTax is one row of the state table
type StateTax struct {
	Name  string
	Rates map[IncomeBracket]float64
}

// TaxTables is the read-only lookup data for the comparator.
// Built once at startup and shared by all requests; nothing mutates it after NewTaxTables.
type TaxTables struct {
	federal      FederalBracketTable
	federalOrder []string
	states       StateTaxTable
	stateOrder   []string
}

// NewTaxTables validates and copies the given rows. Row order is kept for display.
func NewTaxTables(federal []FederalBracket, states []StateTax) (*TaxTables, error) {
	t := &TaxTables{
		federal: make(FederalBracketTable, len(federal)),
		states:  make(StateTaxTable, len(states)),
	}

	for _, fb := range federal {
		if fb.Label == "" {
			return nil, errors.New("federal bracket label cannot be empty")
		}
		if _, dup := t.federal[fb.Label]; dup {
			return nil, fmt.Errorf("duplicate federal bracket %q", fb.Label)
		}
		if err := validateRate(fb.Rate); err != nil {
			return nil, fmt.Errorf("federal bracket %q: %w", fb.Label, err)
		}
		t.federal[fb.Label] = fb.Rate
		t.federalOrder = append(t.federalOrder, fb.Label)
	}

	for _, st := range states {
		if st.Name == "" {
			return nil, errors.New("state name cannot be empty")
		}
		if _, dup := t.states[st.Name]; dup {
			return nil, fmt.Errorf("duplicate state %q", st.Name)
		}
		rates := make(map[IncomeBracket]float64, len(st.Rates))
		for bracket, rate := range st.Rates {
			if !bracket.Valid() {
				return nil, fmt.Errorf("state %q: invalid income bracket %q", st.Name, bracket)
			}
			if err := validateRate(rate); err != nil {
				return nil, fmt.Errorf("state %q %s: %w", st.Name, bracket, err)
			}
			rates[bracket] = rate
		}
		// Every state must define all three brackets
		for _, bracket := range IncomeBrackets() {
			if _, ok := rates[bracket]; !ok {
				return nil, fmt.Errorf("state %q is missing income bracket %q", st.Name, bracket)
			}
		}
		t.states[st.Name] = rates
		t.stateOrder = append(t.stateOrder, st.Name)
	}

	return t, nil
}

func validateRate(rate float64) error {
	if !(rate >= 0 && rate <= 100) {
		return fmt.Errorf("rate %v must be between 0 and 100", rate)
	}
	return nil
}

// FederalRate returns the federal rate in percent, 0 for unknown labels
func (t *TaxTables) FederalRate(label string) float64 {
	return t.federal.Rate(label)
}

// StateRate returns the state rate in percent, 0 for an unknown state or bracket
func (t *TaxTables) StateRate(state string, bracket IncomeBracket) float64 {
	return t.states.Rate(state, bracket)
}

// FederalBrackets returns a copy of the federal rows in table order
func (t *TaxTables) FederalBrackets() []FederalBracket {
	out := make([]FederalBracket, 0, len(t.federalOrder))
	for _, label := range t.federalOrder {
		out = append(out, FederalBracket{Label: label, Rate: t.federal[label]})
	}
	return out
}

// States returns a deep copy of the state rows in table order
func (t *TaxTables) States() []StateTax {
	out := make([]StateTax, 0, len(t.stateOrder))
	for _, name := range t.stateOrder {
		rates := make(map[IncomeBracket]float64, len(t.states[name]))
		for bracket, rate := range t.states[name] {
			rates[bracket] = rate
		}
		out = append(out, StateTax{Name: name, Rates: rates})
	}
	return out
}

// WithFederalBracket returns a new table set with fb added, or replacing the row with the same label.
// The receiver is left untouched.
func (t *TaxTables) WithFederalBracket(fb FederalBracket) (*TaxTables, error) {
	federal := t.FederalBrackets()
	replaced := false
	for i := range federal {
		if federal[i].Label == fb.Label {
			federal[i] = fb
			replaced = true
		}
	}
	if !replaced {
		federal = append(federal, fb)
	}
	return NewTaxTables(federal, t.States())
}

// WithState returns a new table set with st added, or replacing the row with the same name.
// The receiver is left untouched.
func (t *TaxTables) WithState(st StateTax) (*TaxTables, error) {
	states := t.States()
	replaced := false
	for i := range states {
		if states[i].Name == st.Name {
			states[i] = st
			replaced = true
		}
	}
	if !replaced {
		states = append(states, st)
	}
	return NewTaxTables(t.FederalBrackets(), states)
}

// Options returns the choices offered to users, in table order
func (t *TaxTables) Options() FormOptions {
	return FormOptions{
		FederalBrackets: append([]string(nil), t.federalOrder...),
		States:          append([]string(nil), t.stateOrder...),
		IncomeBrackets:  IncomeBrackets(),
	}
}

// ValidateCategories is the optional strict check: every categorical input must be recognized.
// The comparator itself never calls it; unknown keys there simply read as zero.
func (t *TaxTables) ValidateCategories(in CalculationInput) error {
	if _, ok := t.federal[in.FederalBracket]; !ok {
		return fmt.Errorf("invalid federal bracket %q: %w", in.FederalBracket, ErrUnknownCategory)
	}
	if _, ok := t.states[in.State]; !ok {
		return fmt.Errorf("invalid state %q: %w", in.State, ErrUnknownCategory)
	}
	if !in.IncomeBracket.Valid() {
		return fmt.Errorf("invalid income bracket %q: %w", in.IncomeBracket, ErrUnknownCategory)
	}
	return nil
}

// DefaultTaxTables returns the built-in tables. The figures are illustrative, not tax advice.
func DefaultTaxTables() *TaxTables {
	tables, err := NewTaxTables(defaultFederalBrackets(), defaultStates())
	if err != nil {
		panic(fmt.Sprintf("built-in tax tables are invalid: %v", err))
	}
	return tables
}

func defaultFederalBrackets() []FederalBracket {
	return []FederalBracket{
		{Label: "10%", Rate: 10},
		{Label: "12%", Rate: 12},
		{Label: "22%", Rate: 22},
		{Label: "24%", Rate: 24},
		{Label: "32%", Rate: 32},
		{Label: "35%", Rate: 35},
		{Label: "37%", Rate: 37},
	}
}

func defaultStates() []StateTax {
	return []StateTax{
		{Name: "California", Rates: brackets(1, 6, 9.3)},
		{Name: "Texas", Rates: brackets(0, 0, 0)},
		{Name: "New York", Rates: brackets(4, 6.33, 8.82)},
		{Name: "Florida", Rates: brackets(0, 0, 0)},
		{Name: "Illinois", Rates: brackets(4.95, 4.95, 4.95)},
	}
}

func brackets(low, mid, high float64) map[IncomeBracket]float64 {
	return map[IncomeBracket]float64{
		IncomeBracketLow:  low,
		IncomeBracketMid:  mid,
		IncomeBracketHigh: high,
	}
}
