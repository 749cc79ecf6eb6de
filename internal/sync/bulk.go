package sync

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/speedarch/speedarch/pkg/types"
)

// backupUntilDone keeps retrying one game's backup until it succeeds or
// turns out unresolvable. A failed game is not skipped: the batch waits
// out a cooldown and retries the same game, so coverage is never silently
// incomplete.
func (o *Orchestrator) backupUntilDone(ctx context.Context, id string) error {
	for {
		err := o.BackupGame(ctx, id)
		if err == nil {
			return nil
		}
		if errors.Is(err, types.ErrNotFound) {
			// Unresolvable games are reported and skipped; the batch
			// moves on.
			o.log.Warn("game not found, skipping", zap.String("game", id))
			return nil
		}
		if errors.Is(err, types.ErrLedgerPersistence) || ctx.Err() != nil {
			return err
		}
		o.log.Warn("backup failed, restarting after cooldown",
			zap.String("game", id), zap.Error(err))
		o.sleep(o.cfg.Cooldown)
	}
}

// BackupUser backs up every game the resolved user has submitted runs to.
func (o *Orchestrator) BackupUser(ctx context.Context, text string) error {
	user, err := o.catalog.ResolveUser(ctx, text)
	if err != nil {
		return fmt.Errorf("resolving user %q: %w", text, err)
	}
	o.log.Info("backing up user portfolio", zap.String("user", user.Name), zap.String("id", user.ID))

	// Distinct game IDs in first-seen order.
	var gameIDs []string
	seen := make(map[string]bool)
	seq := o.catalog.UserRuns(ctx, user.ID)
	for {
		run, err := retryStep(o, ctx, "list-user-runs", user.ID, seq.Next)
		if errors.Is(err, types.ErrEndOfSeq) {
			break
		}
		if err != nil {
			return fmt.Errorf("listing runs of %s: %w", user.Name, err)
		}
		if run.GameID != "" && !seen[run.GameID] {
			seen[run.GameID] = true
			gameIDs = append(gameIDs, run.GameID)
		}
	}

	for i, id := range gameIDs {
		o.sleep(o.cfg.RateLimit)
		o.log.Info("backing up",
			zap.String("game", id),
			zap.Int("remaining", len(gameIDs)-i-1))
		if err := o.backupUntilDone(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// RefreshAll walks the ledger in staleness order, oldest backup first,
// refreshing every game not already handled this session.
func (o *Orchestrator) RefreshAll(ctx context.Context) error {
	queue := o.ledger.StaleOrder()
	for i, entry := range queue {
		if o.session[entry.GameID] {
			continue
		}
		o.log.Info("refreshing",
			zap.String("game", entry.GameID),
			zap.Time("last_backup", entry.BackedUp),
			zap.Int("remaining", len(queue)-i-1))
		if err := o.backupUntilDone(ctx, entry.GameID); err != nil {
			return err
		}
		o.sleep(o.cfg.RateLimit)
	}
	return nil
}

// BackupCatalog walks the whole catalog newest-created-first, backing up
// every game not already in the ledger.
func (o *Orchestrator) BackupCatalog(ctx context.Context) error {
	backedUp := 0
	seq := o.catalog.Games(ctx)
	for {
		header, err := retryStep(o, ctx, "list-games", "", seq.Next)
		if errors.Is(err, types.ErrEndOfSeq) {
			break
		}
		if err != nil {
			return fmt.Errorf("walking catalog: %w", err)
		}

		if o.ledger.IsKnown(header.ID) {
			continue
		}

		o.log.Info("backing up", zap.String("game", header.Name), zap.String("id", header.ID))
		o.sleep(o.cfg.RateLimit)
		if err := o.backupUntilDone(ctx, header.ID); err != nil {
			return err
		}
		backedUp++
		o.log.Info("catalog progress", zap.Int("games_backed_up", backedUp))
	}
	return nil
}

// BackupRecent walks catalog runs newest-submitted-first and backs up each
// game whose feed activity postdates its ledger entry. Runs without any
// usable timestamp never trigger a backup on their own.
func (o *Orchestrator) BackupRecent(ctx context.Context) error {
	seq := o.catalog.RecentRuns(ctx)
	for {
		run, err := retryStep(o, ctx, "list-recent-runs", "", seq.Next)
		if errors.Is(err, types.ErrEndOfSeq) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("walking recent runs: %w", err)
		}

		if run.GameID == "" || o.session[run.GameID] || !o.runIsNew(run) {
			continue
		}

		if d := run.EffectiveDate(); d != nil {
			o.log.Info("backing up runs", zap.String("game", run.GameID), zap.Time("submitted", *d))
		}
		o.sleep(o.cfg.RateLimit)
		if err := o.backupUntilDone(ctx, run.GameID); err != nil {
			return err
		}
	}
}

// runIsNew reports whether the run's effective timestamp postdates the
// game's ledger entry. Undated runs are excluded from the comparison.
func (o *Orchestrator) runIsNew(run *types.Run) bool {
	d := run.EffectiveDate()
	if d == nil {
		return false
	}
	last, ok := o.ledger.LastBackup(run.GameID)
	if !ok {
		return true
	}
	return !last.After(*d)
}
