package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/wellness-brain/internal/storage"
)

// Checkins is the check-in store used by the checkin command.
// Set during application wiring.
var Checkins *storage.CheckinStore

var (
	checkinKind string
	checkinNote string
)

var checkinCmd = &cobra.Command{
	Use:   "checkin <user-id>",
	Short: "Record a user check-in data point",
	Long: `Record a single data point for a user: a workout, meal, sleep record,
or mood entry. Check-ins after the analysis watermark are what the
decision engine counts against the data-volume threshold.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Checkins == nil {
			return fmt.Errorf("check-in store not initialized")
		}

		userID := args[0]

		id, err := Checkins.RecordCheckin(cmd.Context(), userID, checkinKind, checkinNote, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("recording check-in: %w", err)
		}

		logCLIEvent("checkin.recorded", map[string]any{
			"checkin_id": id,
			"user_id":    userID,
			"kind":       checkinKind,
		})

		fmt.Printf("Recorded %s check-in %s for %s\n", checkinKind, id, userID)
		return nil
	},
}

func init() {
	checkinCmd.Flags().StringVar(&checkinKind, "kind", "workout", "Check-in kind (workout, meal, sleep, mood)")
	checkinCmd.Flags().StringVar(&checkinNote, "note", "", "Optional note attached to the check-in")
	rootCmd.AddCommand(checkinCmd)
}
