package main

import (
	"github.com/spf13/cobra"

	"github.com/simaogato/yieldcompare-backend/internal/adapter/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive comparison form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := a.comparisonService(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), service)
		},
	}
}
