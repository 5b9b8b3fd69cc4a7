// Package cmd provides the CLI commands for Fido.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/fido/internal/errors"
	"github.com/Aman-CERP/fido/internal/logging"
	"github.com/Aman-CERP/fido/pkg/version"
)

// Global flags
var (
	debugMode      bool
	configPath     string
	loggingCleanup func()
)

// NewRootCmd creates the root command for the fido CLI.
func NewRootCmd() *cobra.Command {
	var opts dialOptions

	cmd := &cobra.Command{
		Use:   "fido",
		Short: "Keypad contact dialer for the terminal",
		Long: `Fido finds contacts the way a phone dialer does: type the keypad
digits of a name (5283 for Kate) or any part of a number, pick a
contact, and call.

Run 'fido' in a terminal for the interactive keypad. When output is
not a terminal the contact list is printed instead.`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDial(cmd.Context(), cmd, opts)
		},
	}

	cmd.SetVersionTemplate("fido version {{.Version}}\n")

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print the contact list instead of starting the keypad")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colors")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "Start with the keypad collapsed")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.fido/logs/")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.config/fido/config.yaml)")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newContactsCmd())
	cmd.AddCommand(newCallCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging installs the file logger when --debug is set.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}
	cleanup, err := logging.SetupDefault(logging.DebugConfig())
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.Info("Debug logging enabled",
		slog.String("log_file", logging.DefaultLogPath()),
		slog.String("version", version.Version))
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		slog.Info("Debug logging stopped")
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command and prints any error for the terminal.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprint(root.ErrOrStderr(), errors.FormatForCLI(err))
	}
	return err
}
