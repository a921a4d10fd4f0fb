package main

import (
	"os"
	"path/filepath"

	"github.com/hepsw/rfm/internal/rfmconfig"
	"github.com/hepsw/rfm/internal/utils"
	"github.com/spf13/cobra"
)

// resolveConfigPath determines which config file to use, honoring (in order):
// 1) An explicitly set --config flag
// 2) RFM_CONFIG_PATH environment variable
// 3) Existing config files in common locations
// 4) The default path
// A flag or environment value is expanded through utils.ResolvePath so a
// "~"-prefixed value resolves the same way the registry path does.
func resolveConfigPath(cmd *cobra.Command) string {
	if cfgFlag := cmd.Flag("config"); cfgFlag != nil && cfgFlag.Changed {
		return expandPath(cfgFlag.Value.String())
	}

	if envPath := os.Getenv("RFM_CONFIG_PATH"); envPath != "" {
		return expandPath(envPath)
	}

	candidates := []string{
		rfmconfig.DefaultConfigPath,
		filepath.Join(home, ".config", "rfm", "config.yaml"),
	}

	for _, candidate := range candidates {
		if utils.FileExists(candidate) {
			return candidate
		}
	}

	return rfmconfig.DefaultConfigPath
}

// expandPath resolves a "~"-prefixed or relative path, falling back to the
// original value on the rare error (ResolvePath only fails on an empty
// string, which none of expandPath's callers pass).
func expandPath(path string) string {
	resolved, err := utils.ResolvePath(path)
	if err != nil {
		return path
	}
	return resolved
}
