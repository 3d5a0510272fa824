package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/simaogato/yieldcompare-backend/internal/domain"
)

// Line is one labelled figure of a rendered result
type Line struct {
	Label string
	Value string
}

// String renders the line as "Label: Value"
func (l Line) String() string {
	return l.Label + ": " + l.Value
}

// Report is the presentation form of a CalculationResult.
// Front ends style Recommendation separately (bold).
type Report struct {
	Figures        []Line
	Recommendation Line
}

// New builds the report for result. Percentages use two decimal places.
func New(result domain.CalculationResult) Report {
	return Report{
		Figures: []Line{
			{Label: "After-Tax Treasury Yield", Value: Percent(result.AfterTaxTreasuryPct)},
			{Label: "After-Tax CD Yield", Value: Percent(result.AfterTaxCDPct)},
			{Label: "CD Premium Over Treasury", Value: Percent(result.CDPremiumPct)},
		},
		Recommendation: Line{Label: "Recommendation", Value: result.Recommendation.Label()},
	}
}

// Percent formats a percentage value with two decimals and a trailing "%"
func Percent(pct float64) string {
	return Fixed2(pct) + "%"
}

// Fixed2 formats a value with exactly two decimals, rounding half away from zero
func Fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// String renders the whole report, one line per figure
func (r Report) String() string {
	var b strings.Builder
	for _, line := range r.Figures {
		b.WriteString(line.String())
		b.WriteByte('\n')
	}
	b.WriteString(r.Recommendation.String())
	return b.String()
}

// Write prints the report under a "Results" heading
func (r Report) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Results\n%s\n", r.String())
	return err
}
