package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/valter-silva-au/wellness-brain/internal/core"
	"github.com/valter-silva-au/wellness-brain/pkg/models"
)

// CompatModel is the archetype compatibility model used by the archetypes
// command. Set during application wiring.
var CompatModel core.CompatibilityModel

var archetypesYAML bool

var archetypesCmd = &cobra.Command{
	Use:   "archetypes",
	Short: "List the behavioral archetypes and their compatibility",
	Long: `List the six behavioral archetypes with their daily time commitment,
complexity, and focus, plus each archetype's compatibility with the
others. With --yaml the table is exported for the coaching content team.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		archetypes := models.AllArchetypes()

		if archetypesYAML {
			type exportRow struct {
				Profile       models.ArchetypeProfile         `yaml:"profile"`
				Compatibility map[string]models.Compatibility `yaml:"compatibility,omitempty"`
			}
			export := make([]exportRow, 0, len(archetypes))
			for _, a := range archetypes {
				profile, _ := models.ProfileFor(a)
				row := exportRow{Profile: profile}
				if CompatModel != nil {
					row.Compatibility = make(map[string]models.Compatibility)
					for _, other := range archetypes {
						if other == a {
							continue
						}
						row.Compatibility[string(other)] = CompatModel.Compat(a, other)
					}
				}
				export = append(export, row)
			}
			return yaml.NewEncoder(os.Stdout).Encode(export)
		}

		for _, a := range archetypes {
			profile, _ := models.ProfileFor(a)
			fmt.Printf("%s\n", a)
			fmt.Printf("  Daily time: %d min\n", profile.DailyTimeMinutes)
			fmt.Printf("  Complexity: %d/10\n", profile.Complexity)
			fmt.Printf("  Focus:      %s\n", profile.Focus)
			if CompatModel != nil {
				for _, other := range archetypes {
					if other == a {
						continue
					}
					fmt.Printf("    -> %-22s %s\n", other, CompatModel.Compat(a, other))
				}
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	archetypesCmd.Flags().BoolVar(&archetypesYAML, "yaml", false, "Export profiles and compatibility as YAML")
	rootCmd.AddCommand(archetypesCmd)
}
