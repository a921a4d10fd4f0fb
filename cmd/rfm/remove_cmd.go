package main

import (
	"regexp"

	"github.com/hepsw/rfm/internal/table"
	"github.com/hepsw/rfm/internal/tableedit"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRemoveCmd())
}

func newRemoveCmd() *cobra.Command {
	var files []string
	var pattern string

	cmd := &cobra.Command{
		Use:   "remove <table>",
		Short: "Remove entries by exact name or by regular expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := args[0]

			return tableedit.Edit(cmd.Context(), location, func(localPath string) error {
				tbl, err := table.Read(localPath)
				if err != nil {
					return err
				}

				for _, name := range files {
					if _, err := tbl.Remove(regexp.QuoteMeta(name)); err != nil {
						return err
					}
				}

				if pattern != "" {
					if _, err := tbl.Remove(pattern); err != nil {
						return err
					}
				}

				return tbl.Write(localPath)
			})
		},
	}

	cmd.Flags().StringSliceVar(&files, "files", nil, "exact entry names to remove")
	cmd.Flags().StringVar(&pattern, "regex", "", "remove every entry name matching this regular expression")
	return cmd
}
