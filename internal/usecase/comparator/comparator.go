package comparator

import (
	"github.com/simaogato/yieldcompare-backend/internal/domain"
)

// Compare converts nominal yields into after-tax yields and recommends the better instrument
// Logic:
//  1. Convert both yields from percent to fractions
//  2. Resolve the federal rate (unknown bracket = 0)
//  3. Resolve the state rate for the income bracket (unknown state or bracket = 0)
//  4. Treasury pays federal tax only (state-tax-exempt)
//  5. CD pays federal tax, then state tax on what is left
//  6. Premium = Treasury - CD, positive when Treasury wins
//  7. Recommend the CD only when it is strictly better; ties go to Treasury
//
// The operation order is fixed so results are reproducible bit for bit.
// Never fails: every lookup is total.
func Compare(tables *domain.TaxTables, input domain.CalculationInput) domain.CalculationResult {
	treasuryYield := input.TreasuryYieldPct / 100
	cdYield := input.CDYieldPct / 100

	var federalRate, stateRate float64
	if tables != nil {
		federalRate = tables.FederalRate(input.FederalBracket) / 100
		stateRate = tables.StateRate(input.State, input.IncomeBracket) / 100
	}

	// float64() conversions round each product; no FMA fusion
	afterTaxTreasury := float64(treasuryYield * (1 - federalRate))
	afterTaxCD := float64(cdYield * (1 - federalRate) * (1 - stateRate))

	cdPremium := afterTaxTreasury - afterTaxCD

	recommendation := domain.RecommendationInvestInTreasury
	if afterTaxCD > afterTaxTreasury {
		recommendation = domain.RecommendationInvestInCD
	}

	return domain.CalculationResult{
		AfterTaxTreasuryPct: afterTaxTreasury * 100,
		AfterTaxCDPct:       afterTaxCD * 100,
		CDPremiumPct:        cdPremium * 100,
		Recommendation:      recommendation,
	}
}
