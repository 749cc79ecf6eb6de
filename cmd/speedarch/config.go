// Config loading for the speedarch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/speedarch/speedarch/internal/paths"
	"github.com/speedarch/speedarch/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileYAML = "config.yaml"
)

// Configuration defaults. The four-second request spacing and one-minute
// cooldown follow the upstream API's published rate ceiling.
const (
	defaultAPIURL      = "https://www.speedrun.com/api/v1"
	defaultBackupDir   = "Backups"
	defaultRateLimit   = 4 * time.Second
	defaultCooldown    = time.Minute
	defaultMaxAttempts = 0
	defaultPageSize    = 200
	defaultLogLevel    = "info"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# speedarch configuration

# Upstream catalog API.
api_url: https://www.speedrun.com/api/v1

# Where workbooks are written, one subdirectory per game.
backup_dir: Backups

# Directory for the backup ledger and history database
# (default: platform data dir).
# data_dir:

# Fixed delay before each per-game fetch in bulk operations.
rate_limit: 4s

# Wait after a transient upstream failure before retrying the same step.
cooldown: 1m

# Retry attempts per step; 0 retries until the operator gives up.
max_attempts: 0

# Page size for paginated endpoints (1-200).
page_size: 200

# Log level: debug, info, warn, error.
log_level: info
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper, creating the directory and a default file on first run. A missing
// config.yaml is not an error; defaults apply.
func loadConfig(configDir string) (types.Config, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return types.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return types.Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault("api_url", defaultAPIURL)
	v.SetDefault("backup_dir", defaultBackupDir)
	v.SetDefault("rate_limit", defaultRateLimit)
	v.SetDefault("cooldown", defaultCooldown)
	v.SetDefault("max_attempts", defaultMaxAttempts)
	v.SetDefault("page_size", defaultPageSize)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("parse config: %w", err)
	}

	dataDir, err := paths.ResolveDataDir(dataDirFlag, cfg.DataDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg.DataDir = dataDir

	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a commented config.yaml if none exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileYAML)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
