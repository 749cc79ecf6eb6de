// Catalog command archives every game in the catalog.
package main

import (
	"context"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "all",
	Short: "Back up every catalog game",
	Long: `All walks the entire catalog newest-created-first and backs up
every game not already in the ledger. Expect this to run for a very long
time; it can be interrupted and resumed, the ledger carries the
progress.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.runCatalog(cmd.Context())
	},
}

func (a *app) runCatalog(ctx context.Context) error {
	orch, cleanup, err := a.orchestrator()
	if err != nil {
		return err
	}
	defer cleanup()

	return orch.BackupCatalog(ctx)
}
