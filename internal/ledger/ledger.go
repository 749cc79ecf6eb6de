// Package ledger persists the mapping of game ID to last-successful-backup
// timestamp, the source of truth for staleness.
//
// The file is a single flat JSON object. Persistence is whole-file
// overwrite through a temp-file, fsync, rename sequence, so a failed write
// leaves the previously persisted state intact. An absent file is not an
// error; it is initialized empty and written immediately so a readable
// file always exists after the first run.
// See docs/ARCHITECTURE.md § Backup Ledger.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/speedarch/speedarch/pkg/types"
)

// Ledger is the in-memory view of the persisted mapping. It is exclusively
// owned by the orchestrator; operations are strictly sequential.
type Ledger struct {
	path    string
	entries map[string]time.Time

	// now is replaced in tests.
	now func() time.Time
}

// Entry pairs a game ID with its last backup time.
type Entry struct {
	GameID   string
	BackedUp time.Time
}

// Load reads the ledger from path. A missing file yields an empty ledger
// persisted immediately; any other read or decode failure wraps
// types.ErrLedgerPersistence and must not be silently ignored.
func Load(path string) (*Ledger, error) {
	l := &Ledger{
		path:    path,
		entries: make(map[string]time.Time),
		now:     time.Now,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := l.persist(); err != nil {
			return nil, err
		}
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", types.ErrLedgerPersistence, path, err)
	}

	if err := json.Unmarshal(data, &l.entries); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", types.ErrLedgerPersistence, path, err)
	}
	if l.entries == nil {
		l.entries = make(map[string]time.Time)
	}
	return l, nil
}

// RecordSuccess sets the entry for id to the current time and persists the
// full mapping before returning. Called only after the game's workbook has
// been durably written.
func (l *Ledger) RecordSuccess(id string) error {
	l.entries[id] = l.now()
	return l.persist()
}

// IsKnown reports whether id has ever been backed up.
func (l *Ledger) IsKnown(id string) bool {
	_, ok := l.entries[id]
	return ok
}

// LastBackup returns the recorded timestamp for id.
func (l *Ledger) LastBackup(id string) (time.Time, bool) {
	t, ok := l.entries[id]
	return t, ok
}

// Len returns the number of ledger entries.
func (l *Ledger) Len() int { return len(l.entries) }

// StaleOrder returns all entries oldest-backed-up-first; this is the
// refresh queue. Equal timestamps break by game ID so the order is
// deterministic.
func (l *Ledger) StaleOrder() []Entry {
	out := make([]Entry, 0, len(l.entries))
	for id, t := range l.entries {
		out = append(out, Entry{GameID: id, BackedUp: t})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BackedUp.Equal(out[j].BackedUp) {
			return out[i].GameID < out[j].GameID
		}
		return out[i].BackedUp.Before(out[j].BackedUp)
	})
	return out
}

// InvalidateAll clears the entire mapping and persists the empty state.
// Irreversible; callers gate it behind explicit operator confirmation.
func (l *Ledger) InvalidateAll() error {
	l.entries = make(map[string]time.Time)
	return l.persist()
}

// persist writes the mapping atomically using the temp-file, fsync, rename
// pattern.
func (l *Ledger) persist() error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", types.ErrLedgerPersistence, dir, err)
	}

	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding: %v", types.ErrLedgerPersistence, err)
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", types.ErrLedgerPersistence, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", types.ErrLedgerPersistence, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: syncing temp file: %v", types.ErrLedgerPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", types.ErrLedgerPersistence, err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing %s: %v", types.ErrLedgerPersistence, l.path, err)
	}
	return nil
}
