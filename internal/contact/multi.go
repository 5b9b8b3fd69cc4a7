package contact

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/fido/internal/errors"
)

// MultiProvider fetches from several providers concurrently and concatenates
// the results in provider order.
type MultiProvider struct {
	providers []Provider

	// SkipFailed logs and skips a failing source instead of failing the fetch.
	SkipFailed bool

	// Logger receives skipped-source warnings. Nil uses slog.Default().
	Logger *slog.Logger
}

// NewMultiProvider combines providers into one.
func NewMultiProvider(providers ...Provider) *MultiProvider {
	return &MultiProvider{providers: providers}
}

// Name implements Provider.
func (m *MultiProvider) Name() string {
	names := make([]string, len(m.providers))
	for i, p := range m.providers {
		names[i] = p.Name()
	}
	return "multi[" + strings.Join(names, ",") + "]"
}

// Fetch implements Provider.
func (m *MultiProvider) Fetch(ctx context.Context, fields FieldSet) ([]Contact, error) {
	results := make([][]Contact, len(m.providers))
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range m.providers {
		g.Go(func() error {
			contacts, err := p.Fetch(gctx, fields)
			if err != nil {
				if m.SkipFailed && ctx.Err() == nil {
					logger.Warn("contact_source_skipped",
						slog.String("source", p.Name()),
						slog.String("error", err.Error()))
					return nil
				}
				return errors.New(errors.ErrCodeFetchFailed, "contact source failed", err).
					WithDetail("source", p.Name())
			}
			results[i] = contacts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]Contact, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
