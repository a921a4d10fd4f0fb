package main

import (
	"fmt"
	"path/filepath"

	"github.com/hepsw/rfm/internal/protocol"
	"github.com/hepsw/rfm/internal/table"
	"github.com/hepsw/rfm/internal/tableedit"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newReplicateCmd())
}

func newReplicateCmd() *cobra.Command {
	var collisions string

	cmd := &cobra.Command{
		Use:   "replicate <table> <ref-table> <ref-root> <target-root>",
		Short: "Recreate another table's entries under a new root, as bare declarations",
		Long: "Reads every entry in ref-table, rewrites its path from under ref-root to the same " +
			"relative position under target-root, and adds it to table as a bare (unmaterialized) " +
			"entry — no content is copied and no marks carry over.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			location, refLocation, refRoot, targetRoot := args[0], args[1], args[2], args[3]

			if !filepath.IsAbs(refRoot) {
				return fmt.Errorf("rfm: ref-root must be an absolute path, got %q", refRoot)
			}

			targetRemote, targetBareRoot, err := splitRemoteRoot(targetRoot)
			if err != nil {
				return err
			}

			var refTable *table.Table
			if err := tableedit.ReadOnly(cmd.Context(), refLocation, func(localPath string) error {
				var err error
				refTable, err = table.Read(localPath)
				return err
			}); err != nil {
				return err
			}

			return tableedit.Edit(cmd.Context(), location, func(localPath string) error {
				tbl, err := table.Read(localPath)
				if err != nil {
					return err
				}

				for _, info := range refTable.Entries() {
					rel, err := filepath.Rel(refRoot, protocol.LocalPath(info.Path))
					if err != nil {
						return err
					}

					newPath, err := protocol.Compose(filepath.Join(targetBareRoot, rel), targetRemote, true)
					if err != nil {
						return err
					}
					newInfo := table.NewBare(info.Name, newPath)

					if _, exists := tbl.Get(info.Name); exists {
						switch collisions {
						case "omit":
							continue
						case "replace":
							tbl.Add(newInfo)
						default:
							return fmt.Errorf("rfm: entry %q already exists in %q", info.Name, location)
						}
						continue
					}

					tbl.Add(newInfo)
				}

				return tbl.Write(localPath)
			})
		},
	}

	cmd.Flags().StringVar(&collisions, "collisions", "fail", "how to handle names already present in the destination table: fail|omit|replace")
	return cmd
}

// splitRemoteRoot separates target-root into the remote prefix accepted by
// protocol.Compose (empty for a plain local root) and the bare filesystem
// root beneath it, so a remote-qualified target-root (e.g.
// "user@host:/data" or "root://eos.example.com//data") clones entries under
// the same protocol rather than only ever producing local paths.
func splitRemoteRoot(targetRoot string) (remote, root string, err error) {
	switch protocol.Classify(targetRoot).Kind {
	case protocol.SSH:
		userHost, path, err := protocol.SplitSSH(targetRoot)
		if err != nil {
			return "", "", err
		}
		return userHost, path, nil
	case protocol.XRootD:
		host, path, err := protocol.SplitXRootD(targetRoot)
		if err != nil {
			return "", "", err
		}
		return "root://" + host, path, nil
	default:
		return "", targetRoot, nil
	}
}
