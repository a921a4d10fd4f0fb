package main

import (
	"regexp"

	"github.com/hepsw/rfm/internal/ingest"
	"github.com/hepsw/rfm/internal/protocol"
	"github.com/hepsw/rfm/internal/rfmerr"
	"github.com/hepsw/rfm/internal/table"
	"github.com/hepsw/rfm/internal/tableedit"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newAddFromDirCmd())
}

func newAddFromDirCmd() *cobra.Command {
	var pattern string
	var remote string
	var bare bool

	cmd := &cobra.Command{
		Use:   "add-from-dir <table> <dir>",
		Short: "Register every file under a directory, keyed by its path relative to dir",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			location, dir := args[0], args[1]

			var re *regexp.Regexp
			if pattern != "" {
				var err error
				re, err = regexp.Compile(pattern)
				if err != nil {
					return err
				}
			}

			candidates, err := ingest.Discover(dir)
			if err != nil {
				return err
			}

			if re != nil {
				filtered := candidates[:0]
				for _, c := range candidates {
					if re.MatchString(c.Name) {
						filtered = append(filtered, c)
					}
				}
				candidates = filtered
			}

			var results []ingest.HashResult
			if bare {
				results = make([]ingest.HashResult, len(candidates))
				for i, c := range candidates {
					path, err := protocol.Compose(c.Path, remote, true)
					if err != nil {
						return err
					}
					results[i] = ingest.HashResult{Candidate: c, Info: table.NewBare(c.Name, path)}
				}
			} else {
				cfg, err := currentConfig(cmd)
				if err != nil {
					return err
				}
				results = ingest.HashAll(cmd.Context(), candidates, cfg.Workers, remote)
			}

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
					tbl.Add(r.Info)
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

	cmd.Flags().StringVar(&pattern, "regex", "", "only add files whose path relative to dir matches this regular expression")
	cmd.Flags().StringVar(&remote, "remote", "", "protocol prefix (user@host or root://host) to qualify each path with")
	cmd.Flags().BoolVar(&bare, "bare", false, "register every entry as a declaration only, without hashing content")
	return cmd
}
