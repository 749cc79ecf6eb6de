// Package sync drives incremental backups: it resolves target games,
// enforces the upstream rate limit, retries transient failures with a
// cooldown, and commits the ledger only after a workbook is durably
// written.
//
// Everything here is strictly sequential. The orchestrator exclusively
// owns the metadata cache for the duration of one game's backup, so no
// locking is needed. See docs/ARCHITECTURE.md § Orchestrator.
package sync

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/speedarch/speedarch/internal/archive"
	"github.com/speedarch/speedarch/internal/cache"
	"github.com/speedarch/speedarch/internal/export"
	"github.com/speedarch/speedarch/internal/ledger"
	"github.com/speedarch/speedarch/internal/table"
	"github.com/speedarch/speedarch/pkg/types"
)

// Historian records completed exports for the history command.
type Historian interface {
	Add(rec archive.Record) error
}

// Orchestrator sequences the backup of one game, a user's portfolio, or
// the whole catalog.
type Orchestrator struct {
	catalog Catalog
	ledger  *ledger.Ledger
	writer  export.Writer
	history Historian
	log     *zap.Logger
	cfg     types.Config

	// session guards against reprocessing a game within one invocation.
	// Not persisted.
	session map[string]bool

	// sleep and now are replaced in tests.
	sleep func(time.Duration)
	now   func() time.Time
}

// New wires an Orchestrator. history may be nil when no export index is
// wanted.
func New(catalog Catalog, led *ledger.Ledger, writer export.Writer, history Historian, log *zap.Logger, cfg types.Config) *Orchestrator {
	return &Orchestrator{
		catalog: catalog,
		ledger:  led,
		writer:  writer,
		history: history,
		log:     log,
		cfg:     cfg,
		session: make(map[string]bool),
		sleep:   time.Sleep,
		now:     time.Now,
	}
}

// ResolveGame turns free text into a game snapshot, or types.ErrNotFound.
func (o *Orchestrator) ResolveGame(ctx context.Context, text string) (*types.Game, error) {
	return o.catalog.SearchGame(ctx, text)
}

// LastBackup returns the recorded ledger timestamp for a game.
func (o *Orchestrator) LastBackup(id string) (time.Time, bool) {
	return o.ledger.LastBackup(id)
}

// Handled reports whether the game was already processed this session.
func (o *Orchestrator) Handled(id string) bool {
	return o.session[id]
}

// BackupGame runs the per-game state machine:
//
//	RESOLVE → FETCH_DETAIL → BUILD_TABLES → EXPORT → COMMIT_LEDGER → DONE
//
// Transient failures in the fetch and build steps cool down and loop back
// to the failed step. Export failures abort the game's backup with the
// ledger untouched. Categories without runs are dropped; when every
// category is empty the game is marked handled but the ledger is not
// updated, so a later non-empty backup still counts as the first real one.
func (o *Orchestrator) BackupGame(ctx context.Context, id string) error {
	if o.session[id] {
		o.log.Debug("already handled this session", zap.String("game", id))
		return nil
	}

	game, err := retryStep(o, ctx, "fetch", id, func() (*types.Game, error) {
		return o.catalog.GameByID(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("fetching game %s: %w", id, err)
	}

	meta := cache.New()
	defer meta.Clear()

	meta.CachePlatforms(game.Platforms)
	meta.CacheRegions(game.Regions)
	meta.CacheVariables(game.Variables)
	meta.CacheLevels(game.Levels)

	built, err := retryStep(o, ctx, "build", id, func() (builtTables, error) {
		return o.buildTables(ctx, game, meta)
	})
	if err != nil {
		return fmt.Errorf("building tables for %s: %w", game.Name, err)
	}
	sheets, rows := built.sheets, built.rows

	if len(sheets) == 0 {
		// Nothing archived: handled for this session, but no ledger entry.
		o.session[id] = true
		o.log.Info("no runs to archive", zap.String("game", game.Name), zap.String("id", id))
		return nil
	}

	dir := filepath.Join(o.cfg.BackupDir, fmt.Sprintf("%s (%s)", game.Abbreviation, game.ID))
	path, err := retryStep(o, ctx, "export", id, func() (string, error) {
		return o.writer.WriteWorkbook(dir, sheets)
	})
	if err != nil {
		return fmt.Errorf("exporting %s: %w", game.Name, err)
	}

	if err := o.ledger.RecordSuccess(game.ID); err != nil {
		return err
	}
	o.session[id] = true

	if o.history != nil {
		rec := archive.Record{
			GameID:     game.ID,
			GameName:   game.Name,
			Path:       path,
			SheetCount: len(sheets),
			RowCount:   rows,
			FinishedAt: o.now(),
		}
		if err := o.history.Add(rec); err != nil {
			// The history index is informational; the backup stands.
			o.log.Warn("recording backup history failed", zap.String("game", id), zap.Error(err))
		}
	}

	o.log.Info("finished backup",
		zap.String("game", game.Name),
		zap.String("path", path),
		zap.Int("sheets", len(sheets)),
		zap.Int("rows", rows))
	return nil
}

// builtTables pairs the surviving sheets with their total row count so the
// build step fits the retry helper's single result value.
type builtTables struct {
	sheets []table.Sheet
	rows   int
}

// buildTables constructs one table per category, dropping empty ones.
// Rebuilt from scratch on retry; run sequences are restartable per call.
func (o *Orchestrator) buildTables(ctx context.Context, game *types.Game, meta *cache.Cache) (builtTables, error) {
	var sheets []table.Sheet
	rows := 0

	for _, cat := range game.Categories {
		o.log.Debug("grabbing runs", zap.String("game", game.Name), zap.String("category", cat.Name))

		b := table.New(cat, game, meta, o.log)
		seq := o.catalog.Runs(ctx, game.ID, cat.ID)
		for {
			run, err := seq.Next()
			if errors.Is(err, types.ErrEndOfSeq) {
				break
			}
			if err != nil {
				return builtTables{}, err
			}
			if err := b.Append(run); err != nil {
				return builtTables{}, err
			}
		}

		if !b.Empty() {
			sheets = append(sheets, b.Sheet())
			rows += len(b.Rows())
		}
	}
	return builtTables{sheets: sheets, rows: rows}, nil
}
