// Backup command archives a single game.
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/speedarch/speedarch/pkg/types"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up one game",
	Long: `Backup prompts for a game name, URL, or ID, resolves it against the
catalog, and archives every category with runs into a timestamped
workbook.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.runBackup(cmd.Context())
	},
}

func (a *app) runBackup(ctx context.Context) error {
	input, err := a.prompt("What game would you like to back up?")
	if err != nil {
		return err
	}

	orch, cleanup, err := a.orchestrator()
	if err != nil {
		return err
	}
	defer cleanup()

	game, err := orch.ResolveGame(ctx, input)
	if errors.Is(err, types.ErrNotFound) {
		fmt.Println("Couldn't find a game with that name/url/ID!")
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve game: %w", err)
	}

	if err := orch.BackupGame(ctx, game.ID); err != nil {
		return err
	}
	fmt.Println("Finished backup of", game.Name)
	return nil
}
