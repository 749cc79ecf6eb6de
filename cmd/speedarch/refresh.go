// Refresh command updates existing backups in staleness order.
package main

import (
	"context"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh all previous backups, oldest first",
	Long: `Refresh walks the ledger in staleness order (oldest backup first)
and re-archives each game, skipping anything already handled this
session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.runRefresh(cmd.Context())
	},
}

func (a *app) runRefresh(ctx context.Context) error {
	orch, cleanup, err := a.orchestrator()
	if err != nil {
		return err
	}
	defer cleanup()

	return orch.RefreshAll(ctx)
}
