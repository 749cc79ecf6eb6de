// Package archive keeps a local history of completed exports in SQLite:
// which workbook was written for which game, when, and how much it held.
//
// The history is purely informational; the JSON ledger remains the source
// of truth for staleness. See docs/ARCHITECTURE.md § Backup History.
package archive

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// historyDBFile is the database file name inside the data directory.
const historyDBFile = "history.db"

// timeLayout stores finished_at as an ISO-8601-comparable string.
const timeLayout = time.RFC3339

// Index is the SQLite-backed backup history.
type Index struct {
	db *sql.DB
}

// Record is one completed export.
type Record struct {
	EntryID    string
	GameID     string
	GameName   string
	Path       string
	SheetCount int
	RowCount   int
	FinishedAt time.Time
}

// Open creates the data directory and history database as needed and
// applies the schema.
func Open(dataDir string) (*Index, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, historyDBFile))
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying history schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Close releases the database handle.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// Add inserts one completed export. A missing EntryID gets a new UUID v7.
func (ix *Index) Add(rec Record) error {
	if rec.EntryID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating entry id: %w", err)
		}
		rec.EntryID = id.String()
	}

	_, err := ix.db.Exec(
		`INSERT INTO backups (entry_id, game_id, game_name, workbook_path, sheet_count, row_count, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.EntryID, rec.GameID, rec.GameName, rec.Path,
		rec.SheetCount, rec.RowCount, rec.FinishedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("recording backup of %s: %w", rec.GameID, err)
	}
	return nil
}

// History lists exports newest first. A non-empty gameID filters to that
// game; limit caps the result when positive.
func (ix *Index) History(gameID string, limit int) ([]Record, error) {
	query := `SELECT entry_id, game_id, game_name, workbook_path, sheet_count, row_count, finished_at
	          FROM backups`
	var args []any
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY finished_at DESC, entry_id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := ix.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var finished string
		if err := rows.Scan(&rec.EntryID, &rec.GameID, &rec.GameName, &rec.Path,
			&rec.SheetCount, &rec.RowCount, &finished); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		t, err := time.Parse(timeLayout, finished)
		if err != nil {
			return nil, fmt.Errorf("parsing finished_at %q: %w", finished, err)
		}
		rec.FinishedAt = t
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return out, nil
}
