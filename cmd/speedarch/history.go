// History command lists completed exports.
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/speedarch/speedarch/internal/archive"
	"github.com/speedarch/speedarch/pkg/types"
)

// historyLimit caps the listing so a long-lived archive stays readable.
const historyLimit = 50

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed backups, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.runHistory(cmd.Context())
	},
}

func (a *app) runHistory(ctx context.Context) error {
	input, err := a.prompt("Filter by game name/ID (leave empty for all):")
	if err != nil {
		return err
	}

	gameID := ""
	if input != "" {
		orch, cleanup, err := a.orchestrator()
		if err != nil {
			return err
		}
		game, err := orch.ResolveGame(ctx, input)
		cleanup()
		if errors.Is(err, types.ErrNotFound) {
			fmt.Println("Couldn't find a game with that name/url/ID!")
			return nil
		}
		if err != nil {
			return fmt.Errorf("resolve game: %w", err)
		}
		gameID = game.ID
	}

	index, err := archive.Open(a.cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open history index: %w", err)
	}
	defer index.Close()

	records, err := index.History(gameID, historyLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No backups recorded yet.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s  %-30s  %d sheets, %d rows\n  %s\n",
			rec.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			rec.GameName, rec.SheetCount, rec.RowCount, rec.Path)
	}
	return nil
}
