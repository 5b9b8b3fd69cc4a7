package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/fido/internal/config"
	"github.com/Aman-CERP/fido/internal/contact"
	"github.com/Aman-CERP/fido/internal/errors"
	"github.com/Aman-CERP/fido/internal/output"
)

type importOptions struct {
	db     string
	format string
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import contacts into the local store",
		Long: `Import contacts from a vCard or YAML file into the SQLite contact store,
replacing what the store held before.

The store defaults to the first sqlite source in the config, or
~/.fido/contacts.db.`,
		Example: `  fido import ~/Downloads/contacts.vcf
  fido import team.yaml --db ./team.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.db, "db", "", "SQLite store to write")
	cmd.Flags().StringVar(&opts.format, "type", "", "Source type: vcard, yaml (default: from extension)")

	return cmd
}

func runImport(ctx context.Context, cmd *cobra.Command, path string, opts importOptions) error {
	kind := strings.ToLower(opts.format)
	if kind == "" {
		kind = contact.KindFromPath(path)
	}
	if kind == contact.KindSQLite {
		return errors.ValidationError("import reads vcard or yaml files", nil).
			WithDetail("path", path)
	}

	dbPath := opts.db
	if dbPath == "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		dbPath = storePath(cfg)
	}

	src, err := contact.NewProvider(kind, path)
	if err != nil {
		return err
	}
	contacts, err := src.Fetch(ctx, contact.DefaultFields)
	if err != nil {
		return err
	}

	store, err := contact.OpenSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Replace(ctx, contacts); err != nil {
		return err
	}
	slog.Info("contacts_imported",
		slog.String("source", src.Name()),
		slog.String("store", dbPath),
		slog.Int("count", len(contacts)))

	out := output.New(cmd.OutOrStdout())
	out.Successf("Imported %d contacts", len(contacts))
	out.Statusf("📁", "Store: %s", dbPath)
	return nil
}

// storePath is the first sqlite source in cfg, or the default store.
func storePath(cfg *config.Config) string {
	for _, s := range cfg.Contacts.Sources {
		kind := s.Type
		if kind == "" {
			kind = contact.KindFromPath(s.Path)
		}
		if strings.EqualFold(kind, contact.KindSQLite) {
			return s.Path
		}
	}
	return config.DefaultStorePath()
}
