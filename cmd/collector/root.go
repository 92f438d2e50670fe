// Root command for the collector CLI.
package main

import (
	"github.com/spf13/cobra"
)

// Global flag values.
var (
	flagConfigDir string
	flagLogLevel  string
)

// cfg holds the configuration loaded by PersistentPreRunE so all
// subcommands can use it.
var cfg = defaultConfig()

var rootCmd = &cobra.Command{
	Use:   "collector",
	Short: "Collector gathers community wallet addresses into a spreadsheet",
	Long: `Collector is a Discord bot that collects wallet addresses from
community members, files each member under the sheet tab matching their
highest-priority role, and keeps the tabs reconciled as roles change.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(flagConfigDir)
		if err != nil {
			return err
		}
		if flagLogLevel != "" {
			loaded.LogLevel = flagLogLevel
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(listCmd)
}
