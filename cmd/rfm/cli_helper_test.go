package main

import (
	"os"
	"testing"

	"github.com/hepsw/rfm/internal/rfmconfig"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newParentCmd builds a cobra command carrying the same persistent flags as
// rootCmd, so a subcommand under test can resolve --config/--workers/--registry
// through cobra's normal flag inheritance without exercising the real root
// command's PreRunE or process-wide logging setup.
func newParentCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "rfm"}
	cmd.PersistentFlags().StringP("config", "c", rfmconfig.DefaultConfigPath, "rfm config file")
	cmd.PersistentFlags().IntP("workers", "w", rfmconfig.DefaultWorkers, "maximum concurrent transfers")
	cmd.PersistentFlags().String("registry", rfmconfig.DefaultRegistryPath, "path to the registry manifest")
	return cmd
}
