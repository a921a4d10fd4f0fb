package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenNoFileOrEnv(t *testing.T) {
	viper.Reset()
	cmd := newParentCmd()
	require.NoError(t, cmd.PersistentFlags().Set("config", filepath.Join(t.TempDir(), "missing.json")))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadConfigEnvOverridesFlagDefault(t *testing.T) {
	viper.Reset()
	t.Setenv("RFM_WORKERS", "9")

	cmd := newParentCmd()
	require.NoError(t, cmd.PersistentFlags().Set("config", filepath.Join(t.TempDir(), "missing.json")))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Workers)
}

func TestLoadConfigJSONFile(t *testing.T) {
	viper.Reset()

	configFile := filepath.Join(t.TempDir(), "config.json")
	writeTestFile(t, configFile, `{"workers": 6, "registry_path": "/srv/rfm/registry.yaml"}`)

	cmd := newParentCmd()
	require.NoError(t, cmd.PersistentFlags().Set("config", configFile))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, configFile, cfg.Path)
	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, "/srv/rfm/registry.yaml", cfg.RegistryPath)
}
