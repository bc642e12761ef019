// Package cmd provides the CLI commands for the start page.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/xvierd/startpage/internal/adapters/tui"
	"github.com/xvierd/startpage/internal/config"
	"github.com/xvierd/startpage/internal/logging"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	jsonOutput bool
	debugMode  bool
)

// ErrNotTerminal is returned when the start page is launched without a
// terminal on stdout.
var ErrNotTerminal = errors.New("startpage needs an interactive terminal; use a subcommand for scripted access")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "startpage",
	Short: "startpage - a keyboard-driven terminal start page",
	Long: `startpage is a keyboard-first start page for the terminal: a search field
that doubles as a command line, a grid of links, a toolbar and overlay
panels including a world clock and a Pomodoro timer.

Type a trigger word such as "clock" or "focus" into the search field to open
a panel. Press esc to close the most recent surface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runStartPage,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.startpage/startpage.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Log at debug level")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("startpage\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(panelsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
}

// runStartPage launches the full-screen start page.
func runStartPage(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return ErrNotTerminal
	}

	// The TUI owns the terminal, so logs go to a file while it runs.
	restore, err := logging.ToFile(config.GetLogPath(app.config))
	if err != nil {
		return err
	}
	defer func() { _ = restore() }()

	opts := tui.DefaultOptions()
	opts.Themes = app.config.Theme

	ctx := setupSignalHandler()
	return tui.Run(ctx, app.desk, opts)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
