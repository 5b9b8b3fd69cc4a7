package cmd

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/fido/internal/contact"
	"github.com/Aman-CERP/fido/internal/dialer"
	"github.com/Aman-CERP/fido/internal/errors"
	"github.com/Aman-CERP/fido/internal/output"
	"github.com/Aman-CERP/fido/internal/search"
	"github.com/Aman-CERP/fido/internal/t9"
	"github.com/Aman-CERP/fido/internal/telephony"
)

type callOptions struct {
	contact bool
	number  int
	dryRun  bool
}

func newCallCmd() *cobra.Command {
	var opts callOptions

	cmd := &cobra.Command{
		Use:   "call <number>",
		Short: "Call a number or a matching contact",
		Long: `Call a phone number. Formatting characters are dropped before dialing.

With --contact the argument is a keypad query instead; it must match
exactly one contact, whose --number'th phone number is called.`,
		Example: `  fido call "+1 (650) 253-0000"
  fido call --contact 5283
  fido call --contact 5283 --number 2 --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd.Context(), cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.contact, "contact", false, "Treat the argument as keypad digits of a contact")
	cmd.Flags().IntVar(&opts.number, "number", 1, "Which phone number of the contact to call (1-based)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Log the call instead of placing it")

	return cmd
}

func runCall(ctx context.Context, cmd *cobra.Command, arg string, opts callOptions) error {
	a, err := newApp(nil)
	if err != nil {
		return err
	}
	defer a.Close()
	if opts.dryRun {
		a.cfg.Phone.DryRun = true
	}

	caller := a.caller()
	session := dialer.NewSession(dialer.SessionConfig{Caller: caller})
	out := output.New(cmd.OutOrStdout())

	if !opts.contact {
		if err := session.CallNumber(ctx, contact.Contact{}, arg); err != nil {
			return err
		}
		out.Successf("Calling %s", arg)
		return nil
	}

	query, err := search.ParseQuery(arg)
	if err != nil {
		return err
	}
	if err := session.Load(ctx, a.provider); err != nil {
		return err
	}
	for _, d := range query {
		k, ok := t9.KeyFor(d)
		if !ok {
			continue
		}
		if err := session.Press(ctx, k); err != nil {
			return err
		}
	}

	results := session.Results()
	switch len(results) {
	case 0:
		return errors.ValidationError("no contact matches", nil).WithDetail("query", query)
	case 1:
	default:
		names := make([]string, 0, len(results))
		for _, c := range results {
			names = append(names, c.DisplayName())
		}
		return errors.ValidationError(strconv.Itoa(len(results))+" contacts match", nil).
			WithDetail("query", query).
			WithSuggestion("Type more digits to narrow it down: " + strings.Join(names, ", "))
	}

	if err := session.NumberTapped(ctx, 0, opts.number-1); err != nil {
		return err
	}
	out.Successf("Calling %s", results[0].DisplayName())
	if lc, ok := caller.(*telephony.LogCaller); ok {
		for _, uri := range lc.Calls() {
			out.Statusf("📞", "%s (dry run)", uri)
		}
	}
	return nil
}
