package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/wellness-brain/internal/core"
)

// ConfigMgr is the ConfigurationManager used by the init command.
// Set during application wiring.
var ConfigMgr core.ConfigurationManager

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .wellnessrc configuration file",
	Long: `Write a .wellnessrc file populated with default engine, storage,
and alert settings to the base path.

Fails if a .wellnessrc already exists there.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if ConfigMgr == nil {
			return fmt.Errorf("configuration manager not initialized")
		}

		path, err := ConfigMgr.WriteDefaultConfig()
		if err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}

		fmt.Printf("Wrote default configuration to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
