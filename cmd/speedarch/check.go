// Check command reports when a game was last backed up.
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/speedarch/speedarch/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the last backup time of one game",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.runCheck(cmd.Context())
	},
}

func (a *app) runCheck(ctx context.Context) error {
	input, err := a.prompt("What game would you like to check?")
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

	last, known := orch.LastBackup(game.ID)
	if known {
		fmt.Printf("%s was last backed up on %s\n", game.Name, last.Format("2006-01-02"))
		return nil
	}

	yes, err := a.confirm("This game has never been backed up! Would you like to back it up now?")
	if err != nil {
		return err
	}
	if !yes {
		return nil
	}

	if err := orch.BackupGame(ctx, game.ID); err != nil {
		return err
	}
	fmt.Println("Finished backup of", game.Name)
	return nil
}
