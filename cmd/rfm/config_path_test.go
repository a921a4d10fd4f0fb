package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hepsw/rfm/internal/rfmconfig"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.PersistentFlags().StringP("config", "c", rfmconfig.DefaultConfigPath, "path to config file")
	return cmd
}

func TestResolveConfigPathFlagBeatsEnv(t *testing.T) {
	cmd := newTestCmd()
	flagPath := "/tmp/flag/config.json"
	envPath := "/tmp/env/config.json"

	t.Setenv("RFM_CONFIG_PATH", envPath)
	require := assert.New(t)
	require.NoError(cmd.PersistentFlags().Set("config", flagPath))

	resolved := resolveConfigPath(cmd)
	require.Equal(flagPath, resolved)
}

func TestResolveConfigPathUsesEnvWhenNoFlag(t *testing.T) {
	cmd := newTestCmd()
	envPath := "/tmp/env/config.json"

	t.Setenv("RFM_CONFIG_PATH", envPath)

	resolved := resolveConfigPath(cmd)
	assert.Equal(t, envPath, resolved)
}

func TestResolveConfigPathFindsExistingFile(t *testing.T) {
	oldHome := home
	tempHome := t.TempDir()
	home = tempHome
	t.Cleanup(func() { home = oldHome })

	cmd := newTestCmd()
	t.Setenv("RFM_CONFIG_PATH", "")

	existing := filepath.Join(home, ".config", "rfm", "config.yaml")
	assert.NoError(t, os.MkdirAll(filepath.Dir(existing), 0o755))
	assert.NoError(t, os.WriteFile(existing, []byte("workers: 1\n"), 0o644))

	resolved := resolveConfigPath(cmd)
	assert.Equal(t, existing, resolved)
}

func TestResolveConfigPathFallsBackToDefault(t *testing.T) {
	cmd := newTestCmd()
	t.Setenv("RFM_CONFIG_PATH", "")

	resolved := resolveConfigPath(cmd)
	assert.Equal(t, rfmconfig.DefaultConfigPath, resolved)
}
