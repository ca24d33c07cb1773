package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/wellness-brain/internal/core"
	"github.com/valter-silva-au/wellness-brain/internal/storage"
	"github.com/valter-silva-au/wellness-brain/pkg/models"
)

// Analyses is the analysis store. Set during application wiring.
var Analyses *storage.AnalysisStore

var (
	analysisType      string
	analysisCompleted string
)

var analysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "Record and inspect completed analyses",
	Long: `Record completed analyses and inspect the freshness watermark.

Recording an analysis moves the user's watermark, which is what the
decision engine compares new data against.`,
}

var analysesRecordCmd = &cobra.Command{
	Use:   "record <user-id> <archetype>",
	Short: "Record a completed analysis",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Analyses == nil {
			return fmt.Errorf("analysis store not initialized")
		}
		userID := args[0]

		archetype, err := models.ParseArchetype(args[1])
		if err != nil {
			return err
		}

		at := core.AnalysisType(analysisType)
		if at != core.AnalysisBehavior && at != core.AnalysisCircadian {
			return fmt.Errorf("invalid analysis type %q (use %s or %s)", analysisType, core.AnalysisBehavior, core.AnalysisCircadian)
		}

		completedAt := time.Now().UTC()
		if analysisCompleted != "" {
			completedAt, err = time.Parse(time.RFC3339, analysisCompleted)
			if err != nil {
				return fmt.Errorf("parsing --completed-at: %w", err)
			}
		}

		id, err := Analyses.RecordAnalysis(cmd.Context(), userID, string(archetype), at, completedAt)
		if err != nil {
			return fmt.Errorf("recording analysis: %w", err)
		}

		logCLIEvent("analysis.recorded", map[string]any{
			"analysis_id":   id,
			"user_id":       userID,
			"archetype":     string(archetype),
			"analysis_type": string(at),
		})

		fmt.Printf("Recorded %s analysis %s for %s (%s)\n", at, id, userID, archetype)
		return nil
	},
}

var analysesLastCmd = &cobra.Command{
	Use:   "last <user-id> [archetype]",
	Short: "Show the user's freshness watermark",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Analyses == nil {
			return fmt.Errorf("analysis store not initialized")
		}
		userID := args[0]

		archetype := ""
		if len(args) == 2 {
			parsed, err := models.ParseArchetype(args[1])
			if err != nil {
				return err
			}
			archetype = string(parsed)
		}

		watermark, err := Analyses.LatestAnalysis(cmd.Context(), userID, archetype)
		if err != nil {
			return fmt.Errorf("reading watermark: %w", err)
		}
		if watermark == nil {
			fmt.Printf("No analyses recorded for %s\n", userID)
			return nil
		}

		age := time.Since(watermark.CompletedAt)
		fmt.Printf("Latest analysis for %s\n", userID)
		fmt.Printf("  %-14s %s\n", "Archetype:", watermark.Archetype)
		fmt.Printf("  %-14s %s\n", "Completed:", watermark.CompletedAt.Format(time.RFC3339))
		fmt.Printf("  %-14s %.1fh ago\n", "Age:", age.Hours())
		return nil
	},
}

func init() {
	analysesRecordCmd.Flags().StringVar(&analysisType, "type", string(core.AnalysisBehavior), "Analysis type (behavior or circadian)")
	analysesRecordCmd.Flags().StringVar(&analysisCompleted, "completed-at", "", "Completion time (RFC 3339; defaults to now)")
	analysesCmd.AddCommand(analysesRecordCmd)
	analysesCmd.AddCommand(analysesLastCmd)
	rootCmd.AddCommand(analysesCmd)
}
