package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Aman-CERP/fido/internal/errors"
)

// DefaultDebounce is the quiet period before a batch is delivered.
const DefaultDebounce = 250 * time.Millisecond

// Operation is a file system operation type.
type Operation int

const (
	OpCreate Operation = iota
	OpModify
	OpDelete
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpDelete:
		return "DELETE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// FileEvent is a change to a watched source file.
type FileEvent struct {
	// Path is the absolute path of the source file.
	Path      string
	Operation Operation
	Timestamp time.Time
}

// ReloadFunc is called with each debounced batch.
type ReloadFunc func(ctx context.Context, events []FileEvent)

// Options configures a SourceWatcher.
type Options struct {
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// SourceWatcher watches a fixed set of contact source files.
type SourceWatcher struct {
	fsw       *fsnotify.Watcher
	files     map[string]struct{}
	debouncer *Debouncer
	logger    *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
}

// New starts watching the directories that hold paths.
func New(paths []string, opts Options) (*SourceWatcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.InternalError("failed to create file watcher", err)
	}

	debouncer := NewDebouncer(opts.Debounce)
	debouncer.logger = opts.Logger

	w := &SourceWatcher{
		fsw:       fsw,
		files:     make(map[string]struct{}, len(paths)),
		debouncer: debouncer,
		logger:    opts.Logger,
		stopCh:    make(chan struct{}),
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fsw.Close()
			return nil, errors.SourceError("invalid source path", err).WithDetail("path", p)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, errors.New(errors.ErrCodeSourceNotFound, "cannot watch source directory", err).
				WithDetail("dir", dir)
		}
	}

	return w, nil
}

// Run delivers debounced batches to reload until ctx is cancelled or Stop
// is called. reload runs on the Run goroutine.
func (w *SourceWatcher) Run(ctx context.Context, reload ReloadFunc) error {
	defer w.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("source_watch_error", slog.String("error", err.Error()))
		case batch, ok := <-w.debouncer.Output():
			if !ok {
				return nil
			}
			w.logger.Debug("sources_changed", slog.Int("events", len(batch)))
			reload(ctx, batch)
		}
	}
}

func (w *SourceWatcher) handle(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if _, ok := w.files[path]; !ok {
		return
	}

	var op Operation
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
	case event.Has(fsnotify.Write):
		op = OpModify
	case event.Has(fsnotify.Remove):
		op = OpDelete
	case event.Has(fsnotify.Rename):
		op = OpRename
	default:
		return
	}

	w.debouncer.Add(FileEvent{Path: path, Operation: op, Timestamp: time.Now()})
}

// Stop ends Run and releases the watcher. Safe to call more than once.
func (w *SourceWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.debouncer.Stop()
		_ = w.fsw.Close()
	})
}
