package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/wellness-brain/internal/core"
	"github.com/valter-silva-au/wellness-brain/pkg/models"
)

// Advisor is the AnalysisAdvisor used by the decide command.
// Set during application wiring.
var Advisor core.AnalysisAdvisor

var (
	decideArchetype string
	decideForce     bool
	decideJSON      bool
)

var decideCmd = &cobra.Command{
	Use:   "decide <user-id>",
	Short: "Decide whether a fresh analysis must run for a user",
	Long: `Decide among running a fresh behavioral analysis, reusing the cached
analysis augmented with recent context, or forcing a refresh because the
cache is stale.

The decision weighs the user's analysis watermark, the volume of new
check-ins since it, memory quality, archetype complexity, and any
archetype switch.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Advisor == nil {
			return fmt.Errorf("analysis advisor not initialized")
		}

		userID := args[0]

		var archetype models.Archetype
		if decideArchetype != "" {
			parsed, err := models.ParseArchetype(decideArchetype)
			if err != nil {
				return fmt.Errorf("parsing --archetype: %w", err)
			}
			archetype = parsed
		}

		decision, meta := Advisor.Advise(cmd.Context(), userID, archetype, decideForce)

		if decideJSON {
			out := struct {
				Decision models.AnalysisDecision `json:"decision"`
				Metadata models.DecisionMetadata `json:"metadata"`
			}{decision, meta}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting decision as JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Decision: %s\n", decision)
		fmt.Printf("  Reason:        %s\n", meta.Reason)
		fmt.Printf("  Analysis mode: %s\n", meta.AnalysisMode)
		fmt.Printf("  Days to fetch: %d\n", meta.DaysToFetch)
		fmt.Printf("  Threshold:     %d (new data points: %d)\n", meta.Threshold, meta.NewDataPoints)
		fmt.Printf("  Memory:        %s\n", meta.MemoryQuality)
		if meta.DaysSinceAnalysis > 0 {
			fmt.Printf("  Last analysis: %.1f days ago\n", meta.DaysSinceAnalysis)
		}
		if meta.ArchetypeChange {
			fmt.Printf("  Archetype change: %s -> %s\n", meta.PreviousArchetype, archetype)
		}
		for _, d := range meta.Degradations {
			fmt.Printf("  Degraded: %s\n", d)
		}

		return nil
	},
}

func init() {
	decideCmd.Flags().StringVar(&decideArchetype, "archetype", "", "Requested archetype (e.g. \"Peak Performer\")")
	decideCmd.Flags().BoolVar(&decideForce, "force", false, "Force a fresh analysis regardless of cache state")
	decideCmd.Flags().BoolVar(&decideJSON, "json", false, "Output the decision as JSON")
	rootCmd.AddCommand(decideCmd)
}
