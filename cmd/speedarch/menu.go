// Interactive menu, the default when no subcommand is given.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// runMenu is the interactive dispatch loop. Each selection maps to the
// same handler its subcommand uses; after every operation the operator
// decides whether to continue, which is the batch-level cancellation
// point.
func runMenu(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a := application

	for {
		fmt.Println("speedarch v0.2.0")
		fmt.Println("Enter [1] to back up a game")
		fmt.Println("Enter [2] to back up all games that you run")
		fmt.Println("Enter [3] to update existing backups")
		fmt.Println("Enter [4] to back up every catalog game")
		fmt.Println("Enter [5] to back up games with recent runs")
		fmt.Println("Enter [6] to check the last backup of a game")
		fmt.Println("Enter [7] to list backup history")
		fmt.Println("Enter [8] to invalidate all backups")

		choice, err := a.prompt("")
		if err != nil {
			return err
		}

		if err := dispatch(ctx, a, choice); err != nil {
			// Operation-level failures are reported and the menu
			// continues; the operator decides what to do next.
			fmt.Println("Error:", err)
		}

		again, err := a.confirm("Would you like to do anything else?")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func dispatch(ctx context.Context, a *app, choice string) error {
	switch choice {
	case "1":
		return a.runBackup(ctx)
	case "2":
		return a.runUser(ctx)
	case "3":
		return a.runRefresh(ctx)
	case "4":
		return a.runCatalog(ctx)
	case "5":
		return a.runRecent(ctx)
	case "6":
		return a.runCheck(ctx)
	case "7":
		return a.runHistory(ctx)
	case "8":
		return a.runInvalidate(ctx)
	default:
		fmt.Println("Invalid input!")
		return nil
	}
}
