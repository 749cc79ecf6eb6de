package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		APIURL:      "https://example.com/api/v1",
		BackupDir:   "Backups",
		DataDir:     "/tmp/speedarch",
		RateLimit:   4 * time.Second,
		Cooldown:    time.Minute,
		MaxAttempts: 0,
		PageSize:    200,
		LogLevel:    "info",
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "empty api url rejected",
			mutate:  func(c *Config) { c.APIURL = "" },
			wantErr: ErrAPIURLEmpty,
		},
		{
			name:    "empty backup dir rejected",
			mutate:  func(c *Config) { c.BackupDir = "" },
			wantErr: ErrBackupDirEmpty,
		},
		{
			name:    "zero page size rejected",
			mutate:  func(c *Config) { c.PageSize = 0 },
			wantErr: ErrPageSizeInvalid,
		},
		{
			name:    "oversized page rejected",
			mutate:  func(c *Config) { c.PageSize = 500 },
			wantErr: ErrPageSizeInvalid,
		},
		{
			name:    "negative rate limit rejected",
			mutate:  func(c *Config) { c.RateLimit = -time.Second },
			wantErr: ErrRateLimitInvalid,
		},
		{
			name:   "zero rate limit allowed",
			mutate: func(c *Config) { c.RateLimit = 0 },
		},
		{
			name:    "zero cooldown rejected",
			mutate:  func(c *Config) { c.Cooldown = 0 },
			wantErr: ErrCooldownInvalid,
		},
		{
			name:    "negative max attempts rejected",
			mutate:  func(c *Config) { c.MaxAttempts = -1 },
			wantErr: ErrMaxAttemptsInvalid,
		},
		{
			name:   "bounded retries allowed",
			mutate: func(c *Config) { c.MaxAttempts = 5 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
