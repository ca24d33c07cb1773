package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/wellness-brain/internal/core"
	"github.com/valter-silva-au/wellness-brain/pkg/models"
)

// Transitions is the TransitionAssessor used by the transition command.
// Set during application wiring.
var Transitions core.TransitionAssessor

var (
	transitionAge  string
	transitionJSON bool
)

var transitionCmd = &cobra.Command{
	Use:   "transition <from> <to>",
	Short: "Assess a switch between two archetypes",
	Long: `Assess a switch from one archetype to another: the transition strategy,
blend window, and coaching guidance, plus whether the switch would
invalidate a cached analysis of the given age.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Transitions == nil {
			return fmt.Errorf("transition assessor not initialized")
		}

		from, err := models.ParseArchetype(args[0])
		if err != nil {
			return fmt.Errorf("parsing <from>: %w", err)
		}
		to, err := models.ParseArchetype(args[1])
		if err != nil {
			return fmt.Errorf("parsing <to>: %w", err)
		}

		age, err := time.ParseDuration(transitionAge)
		if err != nil {
			return fmt.Errorf("parsing --age: %w", err)
		}

		plan := Transitions.AssessTransition(from, to)
		forces := Transitions.ShouldForceFresh(from, to, age)

		if transitionJSON {
			out := struct {
				Plan             models.TransitionPlan `json:"plan"`
				InvalidatesCache bool                  `json:"invalidates_cache"`
			}{plan, forces}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting plan as JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Transition: %s -> %s\n", from, to)
		fmt.Printf("  Strategy:        %s\n", plan.Strategy)
		fmt.Printf("  Compatibility:   %s\n", plan.Compatibility)
		fmt.Printf("  Transition days: %d\n", plan.TransitionDays)
		fmt.Printf("  Reason:          %s\n", plan.Reason)
		if forces {
			fmt.Printf("  Cache:           invalidated at age %s; a fresh analysis will run\n", transitionAge)
		} else {
			fmt.Printf("  Cache:           still valid at age %s\n", transitionAge)
		}
		printListSection("Timeline", plan.Timeline)
		printListSection("Guidance", plan.Guidance)
		printListSection("Success metrics", plan.SuccessMetrics)

		return nil
	},
}

func printListSection(header string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("\n  %s:\n", header)
	for _, item := range items {
		fmt.Printf("    - %s\n", item)
	}
}

func init() {
	transitionCmd.Flags().StringVar(&transitionAge, "age", "24h", "Age of the cached analysis (e.g. 36h, 72h)")
	transitionCmd.Flags().BoolVar(&transitionJSON, "json", false, "Output the assessment as JSON")
	rootCmd.AddCommand(transitionCmd)
}
