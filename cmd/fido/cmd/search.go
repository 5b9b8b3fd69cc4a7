package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/fido/internal/output"
	"github.com/Aman-CERP/fido/internal/search"
	"github.com/Aman-CERP/fido/internal/ui"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit  int
	format string // "text", "json"
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <digits>",
		Short: "Filter contacts by keypad digits",
		Long: `Filter contacts the way the keypad does.

A contact matches when the digits appear in the keypad spelling of its
name, of its transliterated name, or in any of its phone numbers.
Spaces and dashes in the query are ignored.

Examples:
  fido search 5283
  fido search 555 12
  fido search 726 --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, raw string, opts searchOptions) error {
	query, err := search.ParseQuery(raw)
	if err != nil {
		return err
	}

	a, err := newApp(nil)
	if err != nil {
		return err
	}
	defer a.Close()

	snap, err := a.snapshot(ctx)
	if err != nil {
		return err
	}

	limit := opts.limit
	if limit <= 0 {
		limit = a.maxResults()
	}
	results := search.Explain(snap.Contacts(), snap.Index(), query, limit)
	slog.Debug("search_complete", slog.String("query", query), slog.Int("results", len(results)))

	if opts.format == "json" {
		if results == nil {
			results = []search.Result{}
		}
		return output.New(cmd.OutOrStdout()).JSON(results)
	}

	uiCfg := ui.NewConfig(cmd.OutOrStdout(), ui.WithRegion(a.cfg.Phone.DefaultRegion))
	ui.NewPlainRenderer(uiCfg).Results(query, results)
	return nil
}
