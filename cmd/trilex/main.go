// Package main is the entry point for the trilex dictionary editor.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/trilex/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global flags.
var (
	configPath string
	logLevel   string
	readOnly   bool
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "trilex",
	Short: "Korean / English / Arabic translation dictionary editor",
	Long: `trilex edits a three-language translation dictionary in the terminal.

Rows are reordered by checking a contiguous run of rows and dragging it by
its handle. Translations come from OpenAI, Anthropic or Gemini, and the
dictionary is stored in a directory, a GitHub Gist or a SQLite file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Validate log level
		switch logLevel {
		case "", "debug", "info", "warn", "error":
			return nil
		}
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", logLevel)
	},
	RunE: runEdit,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "path to configuration file")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVarP(&readOnly, "readonly", "R", false, "open the dictionary read-only")
	flags.BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	rootCmd.AddCommand(editCmd, translateCmd, exportCmd, importCmd, modelCmd, versionCmd)
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Check if it's a normal quit using errors.Is for wrapped errors
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "trilex %s\n", version)
		fmt.Fprintf(out, "Commit: %s\n", commit)
		fmt.Fprintf(out, "Built: %s\n", date)
	},
}
