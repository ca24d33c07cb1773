package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	wbmcp "github.com/valter-silva-au/wellness-brain/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the wb MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wb MCP server on stdio",
	Long: `Start the wb MCP server on stdio transport.

The server exposes decision-engine functionality as MCP tools that AI
assistants can call: decide_analysis, assess_transition, list_archetypes,
record_analysis, get_metrics, get_alerts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Advisor == nil {
			return fmt.Errorf("analysis advisor not initialized")
		}

		srv := wbmcp.NewServer(Advisor, Transitions, Analyses, MetricsCalc, AlertEngine, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
