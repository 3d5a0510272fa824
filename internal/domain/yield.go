package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Yield inputs are percentage points. The range and step are enforced by
// the presentation layer, never by the comparator itself.
const (
	MinYieldPct  = 0.0
	MaxYieldPct  = 20.0
	YieldStepPct = 0.1
)

var (
	// ErrYieldOutOfRange is returned when a nominal yield falls outside [MinYieldPct, MaxYieldPct]
	ErrYieldOutOfRange = errors.New("yield out of range")

	// ErrUnknownCategory is returned by strict validation when a federal bracket,
	// state or income bracket is not in the recognized sets
	ErrUnknownCategory = errors.New("unknown category")
)

// IncomeBracket selects the state tax rate within a state
type IncomeBracket string

const (
	IncomeBracketLow  IncomeBracket = "low_income"
	IncomeBracketMid  IncomeBracket = "mid_income"
	IncomeBracketHigh IncomeBracket = "high_income"
)

// IncomeBrackets returns the three recognized income brackets in display order
func IncomeBrackets() []IncomeBracket {
	return []IncomeBracket{IncomeBracketLow, IncomeBracketMid, IncomeBracketHigh}
}

// Valid reports whether b is one of the recognized income brackets
func (b IncomeBracket) Valid() bool {
	switch b {
	case IncomeBracketLow, IncomeBracketMid, IncomeBracketHigh:
		return true
	default:
		return false
	}
}

// Recommendation is the instrument with the higher after-tax yield
type Recommendation string

const (
	RecommendationInvestInCD       Recommendation = "INVEST_IN_CD"
	RecommendationInvestInTreasury Recommendation = "INVEST_IN_TREASURY"
)

// Label returns the human readable form shown to users
func (r Recommendation) Label() string {
	switch r {
	case RecommendationInvestInCD:
		return "Invest in CD"
	case RecommendationInvestInTreasury:
		return "Invest in Treasury"
	default:
		return string(r)
	}
}

// CalculationInput holds the five values collected for a single calculation
type CalculationInput struct {
	TreasuryYieldPct float64
	CDYieldPct       float64
	FederalBracket   string
	State            string
	IncomeBracket    IncomeBracket
}

// ValidateYields checks both nominal yields against the accepted input range
func (in CalculationInput) ValidateYields() error {
	if err := validateYield("treasury yield", in.TreasuryYieldPct); err != nil {
		return err
	}
	return validateYield("cd yield", in.CDYieldPct)
}

func validateYield(name string, pct float64) error {
	// NaN fails both comparisons, so test for the accepted range directly
	if !(pct >= MinYieldPct && pct <= MaxYieldPct) {
		return fmt.Errorf("invalid %s %v: must be between %.1f and %.1f: %w", name, pct, MinYieldPct, MaxYieldPct, ErrYieldOutOfRange)
	}
	return nil
}

// CalculationResult holds the after-tax figures in percentage units
type CalculationResult struct {
	AfterTaxTreasuryPct float64
	AfterTaxCDPct       float64
	CDPremiumPct        float64 // positive when Treasury wins after tax
	Recommendation      Recommendation
}

// Comparison is a computed result tagged for log correlation.
// It is handed to the caller and never stored.
type Comparison struct {
	ID         uuid.UUID
	Input      CalculationInput
	Result     CalculationResult
	ComputedAt time.Time
}

// FormOptions lists the choices a front end offers for the categorical inputs
type FormOptions struct {
	FederalBrackets []string
	States          []string
	IncomeBrackets  []IncomeBracket
}
