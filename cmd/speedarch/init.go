// Init command prepares the config and data directories.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/speedarch/speedarch/internal/archive"
	"github.com/speedarch/speedarch/internal/ledger"
	"github.com/speedarch/speedarch/internal/paths"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize config and data directories",
	Long: `Init creates the config directory with a commented default
config.yaml, an empty ledger, and the backup history database.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Config dir and default config.yaml already exist after
		// PersistentPreRunE; this materializes the data files too.
		if _, err := ledger.Load(application.ledgerPath()); err != nil {
			return err
		}

		index, err := archive.Open(application.cfg.DataDir)
		if err != nil {
			return fmt.Errorf("open history index: %w", err)
		}
		defer index.Close()

		configDir, err := paths.ResolveConfigDir(configDirFlag)
		if err != nil {
			return err
		}

		fmt.Println("speedarch initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", application.cfg.DataDir)
		return nil
	},
}
