// Recent command archives games with fresh run activity.
package main

import (
	"context"

	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Back up games with newly submitted runs",
	Long: `Recent walks catalog runs newest-submitted-first and re-archives
any game whose activity postdates its ledger entry.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.runRecent(cmd.Context())
	},
}

func (a *app) runRecent(ctx context.Context) error {
	orch, cleanup, err := a.orchestrator()
	if err != nil {
		return err
	}
	defer cleanup()

	return orch.BackupRecent(ctx)
}
