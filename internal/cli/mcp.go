// ABOUTME: MCP subcommand for running the kaomoji MCP server
// ABOUTME: Handles stdio transport initialization and server lifecycle
package cli

import (
	"log/slog"

	"github.com/harper/kaomoji/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the kaomoji MCP server",
	Long:  `Start the Model Context Protocol server for AI assistants to query and tag kaomoji over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd)
		slog.Info("starting MCP server", "database", cfg.DatabaseFilename)

		server := mcp.NewServer(cfg)
		return server.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
