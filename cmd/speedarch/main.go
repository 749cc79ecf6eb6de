// Package main provides the speedarch CLI: an interactive tool that
// archives competition records from the upstream catalog into local
// spreadsheet workbooks, tracking per-game backup freshness in a ledger.
// See docs/ARCHITECTURE.md § CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/speedarch/speedarch/internal/logging"
	"github.com/speedarch/speedarch/internal/paths"
)

var (
	// configDirFlag and dataDirFlag are set by the persistent flags.
	configDirFlag string
	dataDirFlag   string

	// application holds the loaded config and logger, initialized by
	// PersistentPreRunE for every command except version.
	application *app
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "speedarch",
	Short: "speedarch archives competition records into spreadsheets",
	Long: `speedarch backs up games from the upstream catalog into .xlsx
workbooks, one sheet per category, and keeps a ledger of when each game
was last archived so repeated runs only refresh stale data.

Run without a subcommand for the interactive menu.`,
	PersistentPreRunE: initApp,
	RunE:              runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "config directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory for ledger and history (default: platform data dir)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(invalidateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("speedarch v0.2.0")
	},
}

// initApp loads config and builds the logger shared by all commands.
func initApp(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(configDirFlag)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	application = newApp(cfg, log)
	return nil
}
