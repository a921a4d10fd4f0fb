package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hepsw/rfm/internal/ingest"
	"github.com/hepsw/rfm/internal/rfmerr"
	"github.com/hepsw/rfm/internal/table"
	"github.com/hepsw/rfm/internal/tableedit"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newAddMassiveCmd())
}

func newAddMassiveCmd() *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:   "add-massive <table> <path>...",
		Short: "Register several files at once, named by their base name",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := args[0]
			paths := args[1:]

			candidates := make([]ingest.Candidate, len(paths))
			for i, p := range paths {
				fi, err := os.Stat(p)
				if err != nil {
					return &rfmerr.IOError{Op: "stat", Path: p, Err: err}
				}
				base := filepath.Base(p)
				name := strings.TrimSuffix(base, filepath.Ext(base))
				candidates[i] = ingest.Candidate{Name: name, Path: p, Size: fi.Size()}
			}

			cfg, err := currentConfig(cmd)
			if err != nil {
				return err
			}

			results := ingest.HashAll(cmd.Context(), candidates, cfg.Workers, remote)

			return tableedit.Edit(cmd.Context(), location, func(localPath string) error {
				tbl, err := table.Read(localPath)
				if err != nil {
					return err
				}

				var failures []error
				for _, r := range results {
					if r.Err != nil {
						failures = append(failures, r.Err)
						continue
					}
					if err := tbl.AddStrict(r.Info); err != nil {
						failures = append(failures, err)
					}
				}

				if err := tbl.Write(localPath); err != nil {
					return err
				}
				if len(failures) > 0 {
					return &rfmerr.WorkerError{Failures: failures}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "", "protocol prefix (user@host or root://host) to qualify each path with")
	return cmd
}
