package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedarch/speedarch/pkg/types"
)

func TestLoadMissingFileInitializesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backups.json")

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())

	// The empty state is persisted immediately so a readable file exists.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(data))
}

func TestLoadCreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "backups.json")

	_, err := Load(path)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backups.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrLedgerPersistence)
}

func TestRecordSuccessPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backups.json")
	l, err := Load(path)
	require.NoError(t, err)

	stamp := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return stamp }

	require.NoError(t, l.RecordSuccess("pd0wq31e"))
	assert.True(t, l.IsKnown("pd0wq31e"))

	got, ok := l.LastBackup("pd0wq31e")
	require.True(t, ok)
	assert.True(t, got.Equal(stamp))

	// A fresh load sees the same entry, as after a process restart.
	reloaded, err := Load(path)
	require.NoError(t, err)
	require.True(t, reloaded.IsKnown("pd0wq31e"))
	got, _ = reloaded.LastBackup("pd0wq31e")
	assert.True(t, got.Equal(stamp))
}

func TestRecordSuccessOverwritesOlderEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backups.json")
	l, err := Load(path)
	require.NoError(t, err)

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return first }
	require.NoError(t, l.RecordSuccess("g1"))

	second := first.Add(48 * time.Hour)
	l.now = func() time.Time { return second }
	require.NoError(t, l.RecordSuccess("g1"))

	got, _ := l.LastBackup("g1")
	assert.True(t, got.Equal(second))
	assert.Equal(t, 1, l.Len())
}

func TestStaleOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backups.json")
	l, err := Load(path)
	require.NoError(t, err)

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for id, at := range map[string]time.Time{
		"aaa": base.Add(1 * time.Hour),
		"bbb": base.Add(3 * time.Hour),
		"ccc": base.Add(2 * time.Hour),
	} {
		at := at
		l.now = func() time.Time { return at }
		require.NoError(t, l.RecordSuccess(id))
	}

	order := l.StaleOrder()
	require.Len(t, order, 3)
	assert.Equal(t, "aaa", order[0].GameID)
	assert.Equal(t, "ccc", order[1].GameID)
	assert.Equal(t, "bbb", order[2].GameID)
}

func TestStaleOrderTiesBreakByGameID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backups.json")
	l, err := Load(path)
	require.NoError(t, err)

	stamp := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return stamp }
	require.NoError(t, l.RecordSuccess("zzz"))
	require.NoError(t, l.RecordSuccess("mmm"))
	require.NoError(t, l.RecordSuccess("aaa"))

	order := l.StaleOrder()
	require.Len(t, order, 3)
	assert.Equal(t, "aaa", order[0].GameID)
	assert.Equal(t, "mmm", order[1].GameID)
	assert.Equal(t, "zzz", order[2].GameID)
}

func TestInvalidateAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backups.json")
	l, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, l.RecordSuccess("g1"))
	require.NoError(t, l.RecordSuccess("g2"))
	require.NoError(t, l.InvalidateAll())

	assert.Equal(t, 0, l.Len())
	assert.False(t, l.IsKnown("g1"))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Len())
}

func TestPersistLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	l, err := Load(filepath.Join(dir, "backups.json"))
	require.NoError(t, err)
	require.NoError(t, l.RecordSuccess("g1"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "backups.json", entries[0].Name())
}
