package main

import (
	"github.com/hepsw/rfm/internal/table"
	"github.com/hepsw/rfm/internal/tableedit"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newUpdateCmd())
}

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <table>",
		Short: "Refresh a table's marks against the files it points to on this host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := args[0]

			return tableedit.Edit(cmd.Context(), location, func(localPath string) error {
				tbl, err := table.Read(localPath)
				if err != nil {
					return err
				}

				refreshed, err := tbl.Updated()
				if err != nil {
					return err
				}

				return refreshed.Write(localPath)
			})
		},
	}
}
