// Invalidate command clears the entire ledger.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/speedarch/speedarch/internal/ledger"
)

var invalidateCmd = &cobra.Command{
	Use:   "invalidate",
	Short: "Invalidate all backups",
	Long: `Invalidate clears the entire ledger after confirmation, so every
game is treated as never backed up. The workbooks on disk are untouched.
This cannot be undone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.runInvalidate(cmd.Context())
	},
}

func (a *app) runInvalidate(_ context.Context) error {
	yes, err := a.confirm("Are you sure you want to invalidate all backups?")
	if err != nil {
		return err
	}
	if !yes {
		return nil
	}

	led, err := ledger.Load(a.ledgerPath())
	if err != nil {
		return err
	}
	if err := led.InvalidateAll(); err != nil {
		return err
	}
	fmt.Println("All backups invalidated.")
	return nil
}
