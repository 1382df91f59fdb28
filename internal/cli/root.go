// Package cli implements the streakbadge CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "streakbadge",
	Short: "Desktop overlay badge for your osu! daily challenge streak",
	Long: `StreakBadge shows your current osu! daily challenge streak in a small
always-on-top badge. It polls the osu! API in the background and keeps the
badge position, size and template preferences in ~/.streakbadge.`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}
