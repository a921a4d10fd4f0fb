package main

import (
	"github.com/hepsw/rfm/internal/protocol"
	"github.com/hepsw/rfm/internal/table"
	"github.com/hepsw/rfm/internal/tableedit"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newAddCmd())
}

func newAddCmd() *cobra.Command {
	var bare bool
	var remote string

	cmd := &cobra.Command{
		Use:   "add <table> <name> <path>",
		Short: "Register a single file under an entry name",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			location, name, path := args[0], args[1], args[2]

			composed, err := protocol.Compose(path, remote, bare)
			if err != nil {
				return err
			}

			return tableedit.Edit(cmd.Context(), location, func(localPath string) error {
				tbl, err := table.Read(localPath)
				if err != nil {
					return err
				}

				var info table.Info
				if bare {
					info = table.NewBare(name, composed)
				} else {
					info, err = table.NewFromNameAndPath(name, composed)
					if err != nil {
						return err
					}
				}

				if err := tbl.AddStrict(info); err != nil {
					return err
				}

				return tbl.Write(localPath)
			})
		},
	}

	cmd.Flags().BoolVar(&bare, "bare", false, "register the entry as a declaration only, without content marks")
	cmd.Flags().StringVar(&remote, "remote", "", "protocol prefix (user@host or root://host) to qualify path with")
	return cmd
}
