package main

import (
	"github.com/spf13/cobra"

	"github.com/simaogato/yieldcompare-backend/internal/adapter/repository/yamlfile"
)

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the active tax tables as YAML",
		Long: `Prints the tax tables the other commands would use, in the same format
accepted by tax_table_file. Redirect the output to start a custom table file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := a.loadTables(cmd.Context())
			if err != nil {
				return err
			}

			data, err := yamlfile.Encode(tables)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
