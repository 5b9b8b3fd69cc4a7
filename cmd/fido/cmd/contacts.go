package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/fido/internal/contact"
	"github.com/Aman-CERP/fido/internal/output"
	"github.com/Aman-CERP/fido/internal/ui"
)

func newContactsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List all contacts",
		Long: `List all contacts from the configured sources, sorted by given and
family name, with formatted phone numbers.`,
		Example: `  fido contacts
  fido contacts --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runContacts(cmd.Context(), cmd, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, count")

	return cmd
}

func runContacts(ctx context.Context, cmd *cobra.Command, format string) error {
	a, err := newApp(nil)
	if err != nil {
		return err
	}
	defer a.Close()

	snap, err := a.snapshot(ctx)
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())
	switch format {
	case "json":
		contacts := snap.Contacts()
		if contacts == nil {
			contacts = []contact.Contact{}
		}
		return out.JSON(contacts)
	case "count":
		_, err := out.Out().Write([]byte(strconv.Itoa(snap.Len()) + "\n"))
		return err
	}

	uiCfg := ui.NewConfig(cmd.OutOrStdout(), ui.WithRegion(a.cfg.Phone.DefaultRegion))
	ui.NewPlainRenderer(uiCfg).Contacts(snap.Contacts())
	return nil
}
