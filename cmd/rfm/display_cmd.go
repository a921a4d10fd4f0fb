package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hepsw/rfm/internal/table"
	"github.com/hepsw/rfm/internal/tableedit"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDisplayCmd())
}

func newDisplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "display <table>",
		Short: "Print every entry in a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := args[0]

			return tableedit.ReadOnly(cmd.Context(), location, func(localPath string) error {
				tbl, err := table.Read(localPath)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if tbl.Description != "" {
					fmt.Fprintln(out, cyan.Render(tbl.Description))
				}

				for _, info := range tbl.Entries() {
					status := green.Render("materialized")
					when := "never"
					if info.IsBare() {
						status = gray.Render("bare")
					} else {
						when = humanize.Time(time.Unix(int64(info.Marks.Timestamp), 0))
					}
					fmt.Fprintf(out, "%-24s  %-13s  %-40s  %s\n", info.Name, status, info.Path, when)
				}
				return nil
			})
		},
	}
}
