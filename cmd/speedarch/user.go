// User command archives every game in a user's portfolio.
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/speedarch/speedarch/pkg/types"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Back up all games a user runs",
	Long: `User prompts for a username or ID and backs up every game the user
has submitted runs to. Individual game failures wait out a cooldown and
retry rather than abort the batch.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.runUser(cmd.Context())
	},
}

func (a *app) runUser(ctx context.Context) error {
	input, err := a.prompt("Enter your username or ID:")
	if err != nil {
		return err
	}

	orch, cleanup, err := a.orchestrator()
	if err != nil {
		return err
	}
	defer cleanup()

	err = orch.BackupUser(ctx, input)
	if errors.Is(err, types.ErrNotFound) {
		fmt.Println("Couldn't find a user with that name/ID!")
		return nil
	}
	return err
}
