package cmd

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/fido/internal/index"
	"github.com/Aman-CERP/fido/internal/logging"
	"github.com/Aman-CERP/fido/internal/ui"
)

type dialOptions struct {
	plain   bool
	noColor bool
	compact bool
}

// runDial starts the keypad on a terminal and prints the list otherwise.
func runDial(ctx context.Context, cmd *cobra.Command, opts dialOptions) error {
	logger := slog.Default()
	if !debugMode {
		// The keypad owns the terminal; keep warnings off it.
		quiet, cleanup, err := logging.Setup(logging.Config{Level: "warn"})
		if err == nil {
			defer cleanup()
			logger = quiet
		}
	}

	a, err := newApp(logger)
	if err != nil {
		return err
	}
	defer a.Close()

	uiCfg := ui.NewConfig(cmd.OutOrStdout(),
		ui.WithForcePlain(opts.plain),
		ui.WithNoColor(opts.noColor || a.cfg.UI.NoColor),
		ui.WithCompact(opts.compact || a.cfg.UI.Compact),
		ui.WithRegion(a.cfg.Phone.DefaultRegion),
	)

	if !ui.Interactive(uiCfg) {
		snap, err := a.snapshot(ctx)
		if err != nil {
			return err
		}
		ui.NewPlainRenderer(uiCfg).Contacts(snap.Contacts())
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := ui.NewModel(ctx, ui.ModelConfig{
		Config:   uiCfg,
		Provider: a.provider,
		Caller:   a.caller(),
		Logger:   logger,
	})

	return ui.Run(ctx, m, func(p *tea.Program) {
		go func() {
			if err := a.watch(ctx, func(snap *index.Snapshot) {
				p.Send(ui.SnapshotMsg{Snapshot: snap})
			}); err != nil {
				logger.Warn("watch_failed", slog.String("error", err.Error()))
			}
		}()
	})
}
