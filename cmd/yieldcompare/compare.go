package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simaogato/yieldcompare-backend/internal/domain"
	"github.com/simaogato/yieldcompare-backend/internal/usecase/report"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		treasury float64
		cd       float64
		federal  string
		state    string
		income   string
	)

	cmd := &cobra.Command{
		Use:     "compare",
		Short:   "Run one comparison and print the results",
		Example: `  yieldcompare compare --treasury 5.0 --cd 6.0 --federal 22% --state Texas --income mid_income`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := a.comparisonService(cmd.Context())
			if err != nil {
				return err
			}

			cmp, err := service.Compare(cmd.Context(), domain.CalculationInput{
				TreasuryYieldPct: treasury,
				CDYieldPct:       cd,
				FederalBracket:   federal,
				State:            state,
				IncomeBracket:    domain.IncomeBracket(income),
			})
			if err != nil {
				return err
			}

			a.logger.Debug("comparison computed",
				zap.String("id", cmp.ID.String()),
				zap.String("recommendation", string(cmp.Result.Recommendation)))

			return report.New(cmp.Result).Write(cmd.OutOrStdout())
		},
	}

	cmd.Flags().Float64Var(&treasury, "treasury", 5.0, "Treasury yield in percent")
	cmd.Flags().Float64Var(&cd, "cd", 6.0, "CD yield in percent")
	cmd.Flags().StringVar(&federal, "federal", "10%", "federal tax bracket label")
	cmd.Flags().StringVar(&state, "state", "California", "state of residence")
	cmd.Flags().StringVar(&income, "income", string(domain.IncomeBracketLow), "income bracket (low_income, mid_income, high_income)")

	return cmd
}
