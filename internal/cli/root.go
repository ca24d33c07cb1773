package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "wb",
	Short: "Wellness Brain - analysis freshness and archetype transition engine",
	Long: `Wellness Brain (wb) is the personalization backend of a wellness-coaching
application. It decides, per user, whether a fresh AI-driven behavioral
analysis must run before generating a plan, or whether a cached analysis
remains valid, and assesses whether switching behavioral archetypes
invalidates the cache.

It provides CLI commands for making freshness decisions, assessing
archetype transitions, recording analyses and check-ins, and inspecting
decision metrics.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wb %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
