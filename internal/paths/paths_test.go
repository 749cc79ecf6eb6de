package paths

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigDirFlagWins(t *testing.T) {
	t.Setenv(EnvConfigDir, "/env/config")

	got, err := ResolveConfigDir("flagged")
	require.NoError(t, err)

	abs, err := filepath.Abs("flagged")
	require.NoError(t, err)
	assert.Equal(t, abs, got)
}

func TestResolveConfigDirEnvOverride(t *testing.T) {
	t.Setenv(EnvConfigDir, "/env/config")

	got, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.Equal(t, "/env/config", got)
}

func TestResolveConfigDirXDGDefault(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG resolution is linux-only")
	}
	t.Setenv(EnvConfigDir, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	got, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg/config", appDirName), got)
}

func TestResolveConfigDirHomeFallback(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG resolution is linux-only")
	}
	t.Setenv(EnvConfigDir, "")
	t.Setenv("XDG_CONFIG_HOME", "")

	orig := platformDir.homeDir
	platformDir.homeDir = func() (string, error) { return "/home/runner", nil }
	t.Cleanup(func() { platformDir.homeDir = orig })

	got, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/runner", ".config", appDirName), got)
}

func TestResolveDataDirPrecedence(t *testing.T) {
	t.Setenv(EnvDataDir, "/env/data")

	got, err := ResolveDataDir("/flag/data", "/config/data")
	require.NoError(t, err)
	assert.Equal(t, "/flag/data", got)

	got, err = ResolveDataDir("", "/config/data")
	require.NoError(t, err)
	assert.Equal(t, "/config/data", got)

	got, err = ResolveDataDir("", "")
	require.NoError(t, err)
	assert.Equal(t, "/env/data", got)
}

func TestResolveDataDirXDGDefault(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG resolution is linux-only")
	}
	t.Setenv(EnvDataDir, "")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	got, err := ResolveDataDir("", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg/data", appDirName), got)
}
