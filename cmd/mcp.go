package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/startpage/internal/adapters/mcp"
	"github.com/xvierd/startpage/internal/config"
	"github.com/xvierd/startpage/internal/logging"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server drives a headless start page: it can open and close panels, run
search commands, cycle the theme and control the Pomodoro timer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol, so logs go to the log file.
		restore, err := logging.ToFile(config.GetLogPath(app.config))
		if err != nil {
			return err
		}
		defer func() { _ = restore() }()

		ctx := setupSignalHandler()
		server := mcp.NewServer(app.desk, Version)
		logging.L().Info("mcp server starting", "version", Version)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}
