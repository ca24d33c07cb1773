package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/wellness-brain/internal/observability"
)

// MetricsCalc aggregates decision metrics from the event log. Set during
// application wiring; nil when observability is disabled.
var MetricsCalc observability.MetricsCalculator

var (
	metricsJSON  bool
	metricsSince string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display decision metrics",
	Long: `Display aggregated decision metrics derived from the event log.

Metrics include decision counts by outcome and memory quality, archetype
changes, degraded decisions, and recorded analyses and check-ins.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (observability may be disabled)")
		}

		sinceTime, err := parseSinceDuration(metricsSince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		metrics, err := MetricsCalc.Calculate(sinceTime)
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		if metricsJSON {
			data, err := json.MarshalIndent(metrics, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting metrics as JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		// Table format.
		fmt.Printf("Metrics (since %s)\n\n", sinceTime.Format("2006-01-02"))
		fmt.Printf("  %-24s %d\n", "Events recorded:", metrics.EventCount)
		fmt.Printf("  %-24s %d\n", "Decisions made:", metrics.DecisionsTotal)
		fmt.Printf("  %-24s %d\n", "Archetype changes:", metrics.ArchetypeChanges)
		fmt.Printf("  %-24s %d\n", "Degraded decisions:", metrics.DegradedDecisions)
		fmt.Printf("  %-24s %d\n", "Analyses recorded:", metrics.AnalysesRecorded)
		fmt.Printf("  %-24s %d\n", "Check-ins recorded:", metrics.CheckinsRecorded)

		if len(metrics.DecisionsByOutcome) > 0 {
			fmt.Println("\n  Decisions by outcome:")
			for outcome, count := range metrics.DecisionsByOutcome {
				fmt.Printf("    %-26s %d\n", outcome+":", count)
			}
		}

		if len(metrics.DecisionsByQuality) > 0 {
			fmt.Println("\n  Decisions by memory quality:")
			for quality, count := range metrics.DecisionsByQuality {
				fmt.Printf("    %-26s %d\n", quality+":", count)
			}
		}

		if metrics.OldestEvent != nil {
			fmt.Printf("\n  %-24s %s\n", "Oldest event:", metrics.OldestEvent.Format(time.RFC3339))
		}
		if metrics.NewestEvent != nil {
			fmt.Printf("  %-24s %s\n", "Newest event:", metrics.NewestEvent.Format(time.RFC3339))
		}

		return nil
	},
}

// parseSinceDuration parses a human-friendly duration string like "7d", "30d",
// or "24h" and returns the corresponding time in the past.
func parseSinceDuration(s string) (time.Time, error) {
	now := time.Now().UTC()
	s = strings.TrimSpace(s)
	if s == "" {
		return now.AddDate(0, 0, -7), nil
	}

	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day duration %q", s)
		}
		return now.AddDate(0, 0, -days), nil
	}

	if strings.HasSuffix(s, "h") {
		hours, err := strconv.Atoi(strings.TrimSuffix(s, "h"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid hour duration %q", s)
		}
		return now.Add(-time.Duration(hours) * time.Hour), nil
	}

	return time.Time{}, fmt.Errorf("unsupported duration format %q (use e.g. 7d, 30d, 24h)", s)
}

func init() {
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "Output metrics as JSON")
	metricsCmd.Flags().StringVar(&metricsSince, "since", "7d", "Time window for metrics (e.g. 7d, 30d, 24h)")
	rootCmd.AddCommand(metricsCmd)
}
