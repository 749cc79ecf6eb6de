package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedarch/speedarch/internal/paths"
	"github.com/speedarch/speedarch/pkg/types"
)

func setupConfigTest(t *testing.T) string {
	t.Helper()
	dataDirFlag = ""
	t.Cleanup(func() { dataDirFlag = "" })
	dir := t.TempDir()
	t.Setenv(paths.EnvDataDir, filepath.Join(dir, "data"))
	return dir
}

func TestLoadConfigFirstRun(t *testing.T) {
	dir := setupConfigTest(t)

	cfg, err := loadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, defaultAPIURL, cfg.APIURL)
	assert.Equal(t, defaultBackupDir, cfg.BackupDir)
	assert.Equal(t, 4*time.Second, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.Cooldown)
	assert.Equal(t, 0, cfg.MaxAttempts)
	assert.Equal(t, 200, cfg.PageSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)

	// First run drops a commented config.yaml next to the defaults.
	data, err := os.ReadFile(filepath.Join(dir, configFileYAML))
	require.NoError(t, err)
	assert.Contains(t, string(data), "api_url:")
}

func TestLoadConfigReadsOverrides(t *testing.T) {
	dir := setupConfigTest(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileYAML), []byte(`
api_url: http://localhost:8080/api/v1
backup_dir: /srv/backups
rate_limit: 10s
cooldown: 30s
max_attempts: 3
page_size: 50
log_level: debug
`), 0o644))

	cfg, err := loadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/v1", cfg.APIURL)
	assert.Equal(t, "/srv/backups", cfg.BackupDir)
	assert.Equal(t, 10*time.Second, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.Cooldown)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigDataDirFlagWins(t *testing.T) {
	dir := setupConfigTest(t)
	dataDirFlag = filepath.Join(dir, "flagged")

	cfg, err := loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "flagged"), cfg.DataDir)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	dir := setupConfigTest(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileYAML), []byte("page_size: 0\n"), 0o644))

	_, err := loadConfig(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrPageSizeInvalid)
}
