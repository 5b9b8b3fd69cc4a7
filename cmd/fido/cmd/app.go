package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/Aman-CERP/fido/internal/config"
	"github.com/Aman-CERP/fido/internal/contact"
	"github.com/Aman-CERP/fido/internal/errors"
	"github.com/Aman-CERP/fido/internal/index"
	"github.com/Aman-CERP/fido/internal/phonetic"
	"github.com/Aman-CERP/fido/internal/telephony"
	"github.com/Aman-CERP/fido/internal/watcher"
)

// app holds what every command needs: the merged config and the contact
// provider built from its sources.
type app struct {
	cfg      *config.Config
	provider contact.Provider
	paths    []string
	closers  []io.Closer
	logger   *slog.Logger
}

// newApp loads the config and opens every configured contact source.
func newApp(logger *slog.Logger) (*app, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := phonetic.SetCacheSize(cfg.Search.PhoneticCacheSize); err != nil {
		return nil, errors.ConfigError("invalid phonetic cache size", err)
	}

	a := &app{cfg: cfg, logger: logger}
	providers := make([]contact.Provider, 0, len(cfg.Contacts.Sources))
	for _, src := range cfg.Contacts.Sources {
		p, err := contact.NewProvider(src.Type, src.Path)
		if err != nil {
			a.Close()
			return nil, err
		}
		if c, ok := p.(io.Closer); ok {
			a.closers = append(a.closers, c)
		}
		providers = append(providers, p)
		a.paths = append(a.paths, src.Path)
	}

	if len(providers) == 1 {
		a.provider = providers[0]
	} else {
		multi := contact.NewMultiProvider(providers...)
		multi.SkipFailed = cfg.Contacts.SkipFailed
		multi.Logger = logger
		a.provider = multi
	}

	logger.Debug("sources_opened",
		slog.String("provider", a.provider.Name()),
		slog.Int("sources", len(providers)))
	return a, nil
}

// Close releases sources that hold files open.
func (a *app) Close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}

// caller returns the dry-run logger or the host opener per config.
func (a *app) caller() telephony.Caller {
	if a.cfg.Phone.DryRun {
		return telephony.NewLogCaller(a.logger)
	}
	return telephony.NewCommandCaller(a.cfg.CallCommand()).WithLogger(a.logger)
}

// snapshot fetches all contacts and indexes them.
func (a *app) snapshot(ctx context.Context) (*index.Snapshot, error) {
	contacts, err := a.provider.Fetch(ctx, contact.DefaultFields)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("contacts_loaded", slog.Int("count", len(contacts)))
	return index.NewSnapshot(contacts), nil
}

// watch rebuilds the snapshot whenever a source file changes and hands it
// to onSnapshot. It blocks until ctx is done. A failed reload is logged and
// the previous snapshot stays in use.
func (a *app) watch(ctx context.Context, onSnapshot func(*index.Snapshot)) error {
	if !a.cfg.Watch.Enabled {
		return nil
	}
	debounce, err := a.cfg.DebounceDuration()
	if err != nil {
		return err
	}

	w, err := watcher.New(a.paths, watcher.Options{Debounce: debounce, Logger: a.logger})
	if err != nil {
		return err
	}

	a.logger.Debug("watch_started", slog.Int("sources", len(a.paths)))
	err = w.Run(ctx, func(ctx context.Context, events []watcher.FileEvent) {
		snap, err := a.snapshot(ctx)
		if err != nil {
			a.logger.Warn("contacts_reload_failed", errors.LogAttrs(err)...)
			return
		}
		a.logger.Info("contacts_reloaded",
			slog.Int("events", len(events)),
			slog.Int("count", snap.Len()))
		onSnapshot(snap)
	})
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// maxResults is the configured result cap, 0 for none.
func (a *app) maxResults() int {
	return a.cfg.Search.MaxResults
}
