package main

import (
	"github.com/hepsw/rfm/internal/table"
	"github.com/hepsw/rfm/internal/tableedit"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <table>",
		Short: "Create a new, empty table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := args[0]
			return tableedit.Create(cmd.Context(), location, func(localPath string) error {
				return table.New(description).Write(localPath)
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "free-form table description")
	return cmd
}
