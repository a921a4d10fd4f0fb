// Package rfmconfig holds the CLI's persisted defaults: how many workers to
// run transfers with, a log-file path, and where a bare "sync" invocation
// should look for its registered table locations. The CLI's logging setup
// always writes to DefaultLogFilePath; it does not read LogFilePath.
package rfmconfig

import (
	"os"
	"path/filepath"

	"github.com/hepsw/rfm/internal/utils"
	"gopkg.in/yaml.v3"
)

var (
	home, _ = os.UserHomeDir()

	// DefaultConfigPath is where the CLI looks for its config file absent
	// an explicit --config flag or RFM_CONFIG_PATH environment variable.
	DefaultConfigPath = filepath.Join(home, ".rfm", "config.yaml")

	// DefaultLogFilePath records every command's log output for later review.
	DefaultLogFilePath = filepath.Join(home, ".rfm", "rfm.log")

	// DefaultRegistryPath is the manifest "rfm sync" reads when invoked
	// with no explicit table locations.
	DefaultRegistryPath = filepath.Join(home, ".rfm", "registry.yaml")
)

const DefaultWorkers = 4

// Config is the CLI's persisted configuration, loaded from YAML and
// overridable by flags and RFM_-prefixed environment variables.
type Config struct {
	Workers      int    `yaml:"workers"`
	RegistryPath string `yaml:"registry_path"`
	LogFilePath  string `yaml:"log_file_path"`
	Path         string `yaml:"-"`
}

// Default returns a Config populated with the package defaults.
func Default() *Config {
	return &Config{
		Workers:      DefaultWorkers,
		RegistryPath: DefaultRegistryPath,
		LogFilePath:  DefaultLogFilePath,
	}
}

// Validate rejects a configuration that would make the sync engine
// unusable, and expands a "~"-prefixed RegistryPath/LogFilePath into an
// absolute one so every later consumer can treat them as plain filesystem
// paths.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		c.Workers = DefaultWorkers
	}
	if c.RegistryPath == "" {
		c.RegistryPath = DefaultRegistryPath
	}
	if c.LogFilePath == "" {
		c.LogFilePath = DefaultLogFilePath
	}

	registryPath, err := utils.ResolvePath(c.RegistryPath)
	if err != nil {
		return err
	}
	c.RegistryPath = registryPath

	logFilePath, err := utils.ResolvePath(c.LogFilePath)
	if err != nil {
		return err
	}
	c.LogFilePath = logFilePath

	return nil
}

// Save persists the config as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := utils.EnsureParent(path); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Load reads a Config from a YAML file, filling in any field the file
// leaves unset with the package default.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.Path = path
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.Path = path
	return cfg, nil
}
