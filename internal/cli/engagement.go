package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/wellness-brain/internal/storage"
)

// Engagement is the engagement context store. Set during application wiring.
var Engagement *storage.EngagementStore

var engagementPayload string

var engagementCmd = &cobra.Command{
	Use:   "context",
	Short: "Capture and inspect engagement context",
	Long: `Capture engagement context snapshots and check whether a user has
recent context of meaningful size.

Engagement context contributes to memory quality scoring: a user with a
recent, substantial snapshot scores higher than one without.`,
}

var engagementSaveCmd = &cobra.Command{
	Use:   "save <user-id>",
	Short: "Save an engagement context snapshot",
	Long: `Save an engagement context snapshot for a user.

The payload is read from --payload, or from stdin when --payload is empty.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engagement == nil {
			return fmt.Errorf("engagement store not initialized")
		}
		userID := args[0]

		payload := engagementPayload
		if payload == "" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading payload from stdin: %w", err)
			}
			payload = string(data)
		}
		if payload == "" {
			return fmt.Errorf("empty payload")
		}

		id, err := Engagement.SaveContext(cmd.Context(), userID, payload, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("saving engagement context: %w", err)
		}

		logCLIEvent("context.saved", map[string]any{
			"context_id": id,
			"user_id":    userID,
			"size":       len(payload),
		})

		fmt.Printf("Saved engagement context %s for %s (%d bytes)\n", id, userID, len(payload))
		return nil
	},
}

var engagementCheckCmd = &cobra.Command{
	Use:   "check <user-id>",
	Short: "Check whether a user has recent engagement context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engagement == nil {
			return fmt.Errorf("engagement store not initialized")
		}
		userID := args[0]

		ok, err := Engagement.HasRecentContext(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("checking engagement context: %w", err)
		}

		if ok {
			fmt.Printf("%s has recent engagement context\n", userID)
		} else {
			fmt.Printf("%s has no recent engagement context\n", userID)
		}
		return nil
	},
}

func init() {
	engagementSaveCmd.Flags().StringVar(&engagementPayload, "payload", "", "Context payload (reads stdin when empty)")
	engagementCmd.AddCommand(engagementSaveCmd)
	engagementCmd.AddCommand(engagementCheckCmd)
	rootCmd.AddCommand(engagementCmd)
}
