package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/trilex/internal/app"
	"github.com/dshills/trilex/internal/renderer/backend"
)

// errNotTerminal is returned when edit runs without a terminal.
var errNotTerminal = errors.New("edit needs a terminal; use export or translate in scripts")

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the dictionary in the terminal editor (default)",
	Args:  cobra.NoArgs,
	RunE:  runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	application, err := app.New(app.Options{
		ConfigPath: configPath,
		LogLevel:   logLevel,
		Debug:      debug,
		ReadOnly:   readOnly,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	// Ensure cleanup on all exit paths
	defer application.Close()

	t, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := application.SetBackend(t); err != nil {
		return fmt.Errorf("failed to set backend: %w", err)
	}

	// Signals end the session like a quit without the unsaved-changes prompt.
	ctx := cmd.Context()
	go func() {
		<-ctx.Done()
		application.Shutdown()
	}()

	return application.Run()
}
