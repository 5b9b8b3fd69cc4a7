package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/fido/internal/errors"
	"github.com/Aman-CERP/fido/internal/index"
	"github.com/Aman-CERP/fido/internal/logging"
	"github.com/Aman-CERP/fido/internal/mcp"
)

func newServeCmd() *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol server on stdio.

AI clients get three tools: search_contacts, list_contacts and dial.
Contacts are reloaded when a source file changes.

Stdout carries only JSON-RPC; logs go to ~/.fido/logs/fido.log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, transport)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "Transport: stdio (default from config)")

	return cmd
}

// verifyStdinForMCP fails when stdin is a terminal: an MCP client must
// launch the server with pipes.
func verifyStdinForMCP() error {
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return errors.ValidationError("stdin is a terminal, not a pipe", nil).
			WithSuggestion("'fido serve' is started by an MCP client; configure it as a stdio server")
	}
	return nil
}

func runServe(ctx context.Context, transport string) error {
	if err := verifyStdinForMCP(); err != nil {
		return err
	}

	a, err := newApp(nil)
	if err != nil {
		return err
	}
	defer a.Close()

	// Nothing but JSON-RPC may reach stdout.
	logger := slog.Default()
	if !debugMode {
		l, cleanup, err := logging.Setup(logging.ServeConfig(a.cfg.Server.LogLevel))
		if err != nil {
			return fmt.Errorf("failed to setup logging: %w", err)
		}
		defer cleanup()
		logger = l
	}
	a.logger = logger

	if transport == "" {
		transport = a.cfg.Server.Transport
	}

	snap, err := a.snapshot(ctx)
	if err != nil {
		// Serve an empty list; the watcher picks up a fixed source.
		logger.Warn("contacts_fetch_failed", errors.LogAttrs(err)...)
		snap = index.Empty()
	}

	srv, err := mcp.NewServer(snap, mcp.Options{
		Caller:     a.caller(),
		Region:     a.cfg.Phone.DefaultRegion,
		MaxResults: a.maxResults(),
		Logger:     logger,
	})
	if err != nil {
		return errors.InternalError("failed to create MCP server", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	watchCtx, stopWatch := context.WithCancel(gctx)
	g.Go(func() error {
		if err := a.watch(watchCtx, srv.SetSnapshot); err != nil {
			// Serving continues without reloads.
			logger.Warn("watch_failed", errors.LogAttrs(err)...)
		}
		return nil
	})
	g.Go(func() error {
		defer stopWatch()
		return srv.Serve(gctx, transport)
	})
	return g.Wait()
}
