package types

import (
	"errors"
	"time"
)

// Config holds the settings loaded from config.yaml.
// See docs/ARCHITECTURE.md § CLI.
type Config struct {
	// APIURL is the base URL of the upstream catalog API.
	APIURL string `mapstructure:"api_url" yaml:"api_url"`

	// BackupDir is where workbooks are written, one subdirectory per game.
	BackupDir string `mapstructure:"backup_dir" yaml:"backup_dir"`

	// DataDir holds the ledger file and the backup history database.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// RateLimit is the fixed delay enforced before every per-game fetch in
	// bulk operations, independent of retry backoff.
	RateLimit time.Duration `mapstructure:"rate_limit" yaml:"rate_limit"`

	// Cooldown is the wait after a transient failure before the same step
	// is retried.
	Cooldown time.Duration `mapstructure:"cooldown" yaml:"cooldown"`

	// MaxAttempts bounds retries of a failed step. Zero means unbounded,
	// which suits a manually operated tool.
	MaxAttempts int `mapstructure:"max_attempts" yaml:"max_attempts"`

	// PageSize is the page size requested from paginated endpoints.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// LogLevel is the zap level: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Config validation errors.
var (
	ErrAPIURLEmpty        = errors.New("api_url must not be empty")
	ErrBackupDirEmpty     = errors.New("backup_dir must not be empty")
	ErrPageSizeInvalid    = errors.New("page_size must be between 1 and 200")
	ErrRateLimitInvalid   = errors.New("rate_limit must not be negative")
	ErrCooldownInvalid    = errors.New("cooldown must be positive")
	ErrMaxAttemptsInvalid = errors.New("max_attempts must not be negative")
)

// Validate checks that the Config is well-formed, returning a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return ErrAPIURLEmpty
	}
	if c.BackupDir == "" {
		return ErrBackupDirEmpty
	}
	if c.PageSize < 1 || c.PageSize > 200 {
		return ErrPageSizeInvalid
	}
	if c.RateLimit < 0 {
		return ErrRateLimitInvalid
	}
	if c.Cooldown <= 0 {
		return ErrCooldownInvalid
	}
	if c.MaxAttempts < 0 {
		return ErrMaxAttemptsInvalid
	}
	return nil
}
